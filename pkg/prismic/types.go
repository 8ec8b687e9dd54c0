package prismic

import "encoding/json"

// Route describes one entry of the route resolution table passed to the
// content API when searching documents. Type selects the custom type the
// route applies to, Path is the URL template and UID marks routes that
// resolve through the document UID.
type Route struct {
	Type string `json:"type" yaml:"type"`
	Path string `json:"path" yaml:"path"`
	UID  bool   `json:"uid,omitempty" yaml:"uid,omitempty"`
}

// Ref is a content ref of the repository. The master ref points at the
// currently published content and is required for document searches.
type Ref struct {
	ID       string `json:"id"`
	Ref      string `json:"ref"`
	Label    string `json:"label"`
	IsMaster bool   `json:"isMasterRef"`
}

// Repository is the response of the repository metadata endpoint. The raw
// response body is retained so the metadata can be persisted verbatim;
// only the fields the backup itself needs are decoded.
type Repository struct {
	Refs []Ref    `json:"refs"`
	Tags []string `json:"tags"`

	raw json.RawMessage
}

// MasterRef returns the ref of the currently published content, or the
// first ref when none is marked as master. Empty when the repository has
// no refs at all.
func (r *Repository) MasterRef() string {
	for _, ref := range r.Refs {
		if ref.IsMaster {
			return ref.Ref
		}
	}
	if len(r.Refs) > 0 {
		return r.Refs[0].Ref
	}
	return ""
}

func (r *Repository) UnmarshalJSON(data []byte) error {
	type repository Repository
	var decoded repository
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = Repository(decoded)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r Repository) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	type repository Repository
	return json.Marshal(repository(r))
}

// Document is one document of the repository. The payload is opaque to the
// backup: the raw JSON is kept for verbatim persistence and only the type
// is decoded, which drives the per-type document split.
type Document struct {
	ID   string
	Type string

	raw json.RawMessage
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var head struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	d.ID = head.ID
	d.Type = head.Type
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	return json.Marshal(struct {
		ID   string `json:"id,omitempty"`
		Type string `json:"type,omitempty"`
	}{d.ID, d.Type})
}

// Asset describes one media library item. The descriptor is treated as an
// opaque payload: only the download URL and the display filename are
// interpreted, and the raw JSON is retained so failed descriptors can be
// written to the failure manifest exactly as the API returned them.
type Asset struct {
	URL      string
	Filename string

	raw json.RawMessage
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var head struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	a.URL = head.URL
	a.Filename = head.Filename
	a.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	if a.raw != nil {
		return a.raw, nil
	}
	return json.Marshal(struct {
		URL      string `json:"url,omitempty"`
		Filename string `json:"filename,omitempty"`
	}{a.URL, a.Filename})
}

// AssetPage is one page of the asset listing endpoint. An empty cursor
// marks the final page.
type AssetPage struct {
	Items  []Asset `json:"items"`
	Cursor string  `json:"cursor"`
}

// searchResponse is one page of the document search endpoint.
type searchResponse struct {
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	NextPage   string     `json:"next_page"`
	Results    []Document `json:"results"`
}

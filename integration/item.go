package integration

// Item is the normalized resource returned to the front end. Timestamps
// stay in the provider's native string form. The directory/parent/children
// fields are populated by hierarchical providers only.
type Item struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	Name             string   `json:"name"`
	CreationTime     string   `json:"creation_time,omitempty"`
	LastModifiedTime string   `json:"last_modified_time,omitempty"`
	URL              string   `json:"url,omitempty"`
	Directory        bool     `json:"directory,omitempty"`
	ParentID         string   `json:"parent_id,omitempty"`
	ParentName       string   `json:"parent_path_or_name,omitempty"`
	Children         []string `json:"children,omitempty"`
	MimeType         string   `json:"mime_type,omitempty"`
}

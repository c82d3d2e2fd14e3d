package domain

type Photo struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	UploadDate  string `json:"uploadDate"`
	Size        int64  `json:"size,omitempty"`
	// File is the blob key the image was stored under.
	File string `json:"file,omitempty"`
}

func (p Photo) Key() string {
	return string(p.ID)
}

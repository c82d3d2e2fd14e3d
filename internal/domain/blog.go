package domain

type BlogStatus string

const (
	StatusDraft     BlogStatus = "draft"
	StatusPublished BlogStatus = "published"
	StatusScheduled BlogStatus = "scheduled"
)

// BlogPost is the authored form of a post as kept in the blogs collection.
type BlogPost struct {
	ID            ID         `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug,omitempty"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Content       string     `json:"content"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags,omitempty"`
	Date          string     `json:"date"`
	ReadTime      string     `json:"readTime,omitempty"`
	Status        BlogStatus `json:"status,omitempty"`
	ScheduledDate string     `json:"scheduledDate,omitempty"`
	Author        string     `json:"author,omitempty"`
}

func (p BlogPost) Key() string {
	return string(p.ID)
}

// Ref returns the path segment used to link to the post.
func (p BlogPost) Ref() string {
	if p.Slug != "" {
		return p.Slug
	}
	return string(p.ID)
}

package domain

// ContentType tags a search result with the kind of record it came from.
type ContentType string

const (
	ContentBlog    ContentType = "blog"
	ContentPhoto   ContentType = "photo"
	ContentProject ContentType = "project"
)

// Collection names one namespace of the content store.
type Collection string

const (
	CollectionBlogs    Collection = "blogs"
	CollectionPhotos   Collection = "photos"
	CollectionProjects Collection = "projects"
)

// Collections lists every collection in search iteration order.
var Collections = []Collection{CollectionBlogs, CollectionPhotos, CollectionProjects}

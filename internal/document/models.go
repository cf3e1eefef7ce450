package document

import "time"

// Document is the persistent document model. Content always holds the full
// current body; updates overwrite it wholesale, no history is kept.
type Document struct {
	DocID         string    `json:"docId" bson:"docId"`
	Title         string    `json:"title" bson:"title"`
	OwnerID       string    `json:"ownerId" bson:"ownerId"`
	Content       string    `json:"content" bson:"content"`
	Collaborators []string  `json:"collaborators" bson:"collaborators"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// DefaultTitle is applied when a create request carries no title.
const DefaultTitle = "Untitled Document"

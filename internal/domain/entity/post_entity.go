package entity

// Post is a short text entry on the shared feed.
//
// Username is a denormalized copy of the author's username, not a
// foreign key; users are never renamed so it cannot drift.
// Timestamp is the human-readable creation date shown in the feed.
type Post struct {
	ID        string
	Title     string
	Content   string
	Username  string
	Timestamp string
	Likes     int
}

package models

import "time"

// User is a registered member of the board. Accounts are provisioned out of
// band; the application only ever reads them.
type User struct {
	ID       int    `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
}

// Post is a shared song with a description.
type Post struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Username    string    `db:"username"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Song        string    `db:"song"`
	Artist      string    `db:"artist"`
	Created     time.Time `db:"created"`
}

// Comment is a remark left on a post.
type Comment struct {
	ID       int       `db:"id"`
	UserID   int       `db:"user_id"`
	PostID   int       `db:"post_id"`
	Username string    `db:"username"`
	Comment  string    `db:"comment"`
	Created  time.Time `db:"created"`
}

// CreatedDate renders the creation timestamp for display.
func (p *Post) CreatedDate() string {
	return p.Created.Format("01/02/2006")
}

// CreatedDate renders the creation timestamp for display.
func (c *Comment) CreatedDate() string {
	return c.Created.Format("01/02/2006")
}

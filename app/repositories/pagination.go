package repositories

// Fixed window lengths per listing type.
const (
	PostsPerPage    = 8
	CommentsPerPage = 4
)

// PageCount returns the number of 1-based pages needed to show total rows.
// An empty listing still has one, empty, page.
func PageCount(total, pageSize int) int {
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Offset returns the row offset of the first row on a 1-based page.
func Offset(page, pageSize int) int {
	return pageSize * (page - 1)
}

// Package blogstats computes summary statistics over a list of blogs.
//
// Every function is pure: the input is never modified and the result depends
// only on the input. Empty input yields zero or nil, never an error. When
// several entries tie for the maximum, the one seen first wins.
package blogstats

// Blog is the part of a blog record the statistics read.
type Blog struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorBlogs is the number of blogs written by an author.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the sum of likes over an author's blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every statistic for a list of blogs.
type Summary struct {
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog *Blog        `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}

// TotalLikes returns the sum of likes over blogs.
func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}

	return total
}

// FavoriteBlog returns a copy of the blog with the most likes, or nil if blogs is empty.
func FavoriteBlog(blogs []Blog) *Blog {
	if len(blogs) == 0 {
		return nil
	}

	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}

	return &fav
}

// MostBlogs returns the author with the most blogs, or nil if blogs is empty.
func MostBlogs(blogs []Blog) *AuthorBlogs {
	author, n, ok := top(blogs, func(Blog) int { return 1 })
	if !ok {
		return nil
	}

	return &AuthorBlogs{Author: author, Blogs: n}
}

// MostLikes returns the author whose blogs have the most likes in total, or nil if blogs is empty.
func MostLikes(blogs []Blog) *AuthorLikes {
	author, n, ok := top(blogs, func(b Blog) int { return b.Likes })
	if !ok {
		return nil
	}

	return &AuthorLikes{Author: author, Likes: n}
}

// Summarize computes every statistic over blogs in one value.
func Summarize(blogs []Blog) Summary {
	return Summary{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

// top sums weight per author and returns the author with the largest sum.
// Authors are compared in order of first appearance.
func top(blogs []Blog, weight func(Blog) int) (string, int, bool) {
	if len(blogs) == 0 {
		return "", 0, false
	}

	var authors []string
	totals := make(map[string]int)
	for _, b := range blogs {
		if _, seen := totals[b.Author]; !seen {
			authors = append(authors, b.Author)
		}
		totals[b.Author] += weight(b)
	}

	best := authors[0]
	for _, a := range authors[1:] {
		if totals[a] > totals[best] {
			best = a
		}
	}

	return best, totals[best], true
}

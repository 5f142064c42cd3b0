package freshrss

// Wire types for the Google Reader compatible API exposed by FreshRSS
// at /api/greader.php.

type streamResponse struct {
	Items []streamItem `json:"items"`
}

type streamItem struct {
	Title      string     `json:"title"`
	Published  int64      `json:"published"`
	Updated    int64      `json:"updated"`
	Canonical  []itemLink `json:"canonical"`
	Alternate  []itemLink `json:"alternate"`
	Link       string     `json:"link"`
	Categories []string   `json:"categories"`
	Origin     itemOrigin `json:"origin"`
	Summary    itemText   `json:"summary"`
}

type itemLink struct {
	Href string `json:"href"`
}

type itemOrigin struct {
	Title string `json:"title"`
}

type itemText struct {
	Content string `json:"content"`
}

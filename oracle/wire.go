package oracle

// Request and response bodies of the HTTP protocol. Every endpoint takes a POST with a
// JSON body. Failures answer with a non-2xx status and an errorResponse.

type expandRequest struct {
	Source  string   `json:"source"`
	Count   int      `json:"count"`
	Exclude []string `json:"exclude,omitempty"`
}

type phrasesResponse struct {
	Phrases []string `json:"phrases"`
}

type clusterRequest struct {
	Items []Item `json:"items"`
}

type clusterResponse struct {
	Categories []Category `json:"categories"`
}

type extractRequest struct {
	Text string `json:"text"`
}

type titleRequest struct {
	Phrases []string `json:"phrases"`
}

type titleResponse struct {
	Title string `json:"title"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Endpoint paths.
const (
	PathExpand  = "/expand"
	PathCluster = "/cluster"
	PathExtract = "/extract"
	PathTitle   = "/title"
	PathHealth  = "/health"
)

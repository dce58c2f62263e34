package entity

// Fort is one record of the fort dataset. Its identity is its position in the source file.
type Fort struct {
	Name        string                 `json:"name"`
	Title       string                 `json:"title"`
	Summary     string                 `json:"summary"`
	InfoboxData map[string]interface{} `json:"infobox_data"`
	Images      []string               `json:"images"`
}

// FortEmbedding is a stored vector entry: positional id, embedding and flattened metadata.
type FortEmbedding struct {
	Id             string
	Document       string
	EmbeddingValue []float32
	Metadata       map[string]string
}

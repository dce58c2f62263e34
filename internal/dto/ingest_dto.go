package dto

// IngestBatchResult reports one consumed batch. Err is nil on success.
type IngestBatchResult struct {
	Offset   int
	Size     int
	Upserted int
	Err      error
}

type IngestSummary struct {
	Records   int
	Batches   int
	Succeeded int
	Failed    int
	Upserted  int
}

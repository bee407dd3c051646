package response

type CacheStatsResponse struct {
	Size int64    `json:"size"`
	Keys []string `json:"keys"`
}

type CacheInvalidateResponse struct {
	Deleted int64 `json:"deleted"`
}

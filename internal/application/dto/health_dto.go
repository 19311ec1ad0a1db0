package dto

// HealthResponse estado del proceso.
type HealthResponse struct {
	Status        string       `json:"status"`
	Environment   string       `json:"environment"`
	UptimeSeconds float64      `json:"uptime"`
	Database      string       `json:"database"`
	Memory        MemoryStatus `json:"memory"`
}

// MemoryStatus uso de memoria en MB.
type MemoryStatus struct {
	AllocMB     float64 `json:"allocMB"`
	HeapInUseMB float64 `json:"heapInUseMB"`
	SysMB       float64 `json:"sysMB"`
	Goroutines  int     `json:"goroutines"`
}

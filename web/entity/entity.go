// Package entity defines data structures shared by the web layer.
package entity

// Msg is the envelope used by the admin status and log endpoints.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// ServerStatus is a host and process snapshot for the admin dashboard.
type ServerStatus struct {
	Cpu    float64 `json:"cpu"`
	Memory struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"memory"`
	Disk struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"disk"`
	Uptime     uint64 `json:"uptime"`
	AppUptime  int64  `json:"appUptime"`
	AppVersion string `json:"appVersion"`
	Blobs      struct {
		Written string `json:"written"`
		Puts    int64  `json:"puts"`
		Deletes int64  `json:"deletes"`
	} `json:"blobs"`
}

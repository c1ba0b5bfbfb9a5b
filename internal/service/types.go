package service

// Task represents a single task item as returned by the API.
// The wire identity key is "_id", not "id".
type Task struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskPatch is a partial update for a task. Nil fields are omitted
// from the request body, so the server only sees the changed subset.
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Credentials is the result of a successful login.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

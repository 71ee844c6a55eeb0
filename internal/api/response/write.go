package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a UTF-8 JSON response. Messages are Hebrew, so the
// charset is always declared.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

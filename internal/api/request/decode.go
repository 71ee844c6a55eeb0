package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// DecodeJSON decodes a JSON body into dst. An empty body leaves dst untouched.
func DecodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// DecodeSubscribe reads a signup from either a JSON or an urlencoded form body
func DecodeSubscribe(r *http.Request) (SubscribeRequest, error) {
	var req SubscribeRequest

	if isForm(r) {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("parsing form: %w", err)
		}
		req.FullName = Text(r.PostForm.Get("fullName"))
		req.Email = Text(r.PostForm.Get("email"))
		req.ParentGroup = FlagFromString(r.PostForm.Get("parentGroup"))
		req.PlayerGroup = FlagFromString(r.PostForm.Get("playerGroup"))
		req.Agree = FlagFromString(r.PostForm.Get("agree"))
		return req, nil
	}

	err := DecodeJSON(r, &req)
	return req, err
}

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded"
}

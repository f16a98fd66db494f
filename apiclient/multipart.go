package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"sort"
)

// Photo is an optional file attached to a multipart create/update.
type Photo struct {
	Field    string
	Filename string
	Content  io.Reader
}

// multipartBody encodes the non-empty fields, in key order, plus the photo.
func multipartBody(fields url.Values, photo *Photo) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range fields[k] {
			if v == "" {
				continue
			}
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", k, err)
			}
		}
	}

	if photo != nil && photo.Content != nil {
		fw, err := w.CreateFormFile(photo.Field, photo.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("attach %s: %w", photo.Field, err)
		}
		if _, err := io.Copy(fw, photo.Content); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", photo.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func multipartRequest(method, path string, query url.Values, fields url.Values, photo *Photo) (request, error) {
	body, ct, err := multipartBody(fields, photo)
	if err != nil {
		return request{}, err
	}
	return request{method: method, path: path, query: query, body: body, contentType: ct}, nil
}

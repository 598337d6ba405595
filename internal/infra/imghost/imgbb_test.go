package imghost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImgBB_Upload(t *testing.T) {
	var gotKey, gotImage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotKey = r.PostFormValue("key")
		gotImage = r.PostFormValue("image")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/abc/photo.jpg","delete_url":"https://ibb.co/del/abc"}}`))
	}))
	defer srv.Close()

	c := NewImgBB(srv.URL)
	hosted, err := c.Upload(context.Background(), "data:image/jpeg;base64,dGVzdA==", "secret-key")

	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/abc/photo.jpg", hosted.URL)
	assert.Equal(t, "https://ibb.co/del/abc", hosted.DeleteURL)
	assert.Equal(t, "secret-key", gotKey)
	// the data-URL prefix must be stripped before upload
	assert.Equal(t, "dGVzdA==", gotImage)
}

func TestImgBB_UploadRawBase64(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "dGVzdA==", r.PostFormValue("image"))
		w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/abc/photo.jpg"}}`))
	}))
	defer srv.Close()

	_, err := NewImgBB(srv.URL).Upload(context.Background(), "dGVzdA==", "k")
	require.NoError(t, err)
}

func TestImgBB_UploadErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "rejected upload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false}`))
			},
		},
		{
			name: "missing url",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"data":{}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewImgBB(srv.URL).Upload(context.Background(), "dGVzdA==", "k")
			assert.Error(t, err)
		})
	}
}

func TestImgBB_UploadTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed server, connection refused

	_, err := NewImgBB(srv.URL).Upload(context.Background(), "dGVzdA==", "k")
	assert.Error(t, err)
}

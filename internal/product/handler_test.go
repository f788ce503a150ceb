// AngelaMos | 2026
// handler_test.go

package product

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func uploadRequest(t *testing.T, field, contents string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "products.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(
		http.MethodPost, "/products/bulk/file", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestBulkCreateFromFileInsertsRows(t *testing.T) {
	repo := newFakeRepo()
	handler := NewHandler(NewService(repo))

	csv := csvHeader +
		"B001,USB Mic,img,url,4.5,100,59.99,79.99,56,True\n" +
		"B001,USB Mic dupe,img,url,4.5,100,59.99,79.99,56,False\n" +
		"B002,Lawnmower,img,url,4.0,10,199.0,299.0,12,True\n"

	rec := httptest.NewRecorder()
	handler.BulkCreateFromFile(rec, uploadRequest(t, "file", csv))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool       `json:"success"`
		Data    BulkResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	result := body.Data

	// the upload path takes every category, unlike the startup seeder
	if result.Inserted != 2 {
		t.Errorf("inserted = %d, want 2", result.Inserted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if _, exists := repo.byASIN["B002"]; !exists {
		t.Error("upload should not apply the seed category allow-list")
	}
}

func TestBulkCreateFromFileMissingFileField(t *testing.T) {
	handler := NewHandler(NewService(newFakeRepo()))

	rec := httptest.NewRecorder()
	handler.BulkCreateFromFile(rec, uploadRequest(t, "wrong", csvHeader))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBulkCreateFromFileRejectsEmptyCSV(t *testing.T) {
	handler := NewHandler(NewService(newFakeRepo()))

	rec := httptest.NewRecorder()
	handler.BulkCreateFromFile(rec, uploadRequest(t, "file", csvHeader))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBulkCreateFromFileRejectsBadHeader(t *testing.T) {
	handler := NewHandler(NewService(newFakeRepo()))

	rec := httptest.NewRecorder()
	handler.BulkCreateFromFile(rec,
		uploadRequest(t, "file", "title,price\nMic,59.99\n"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

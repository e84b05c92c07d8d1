package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadExcelRejectsWrongContentType(t *testing.T) {
	h := NewImportsHandler(nil)

	req := httptest.NewRequest("POST", "/imports/excel", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.UploadExcel(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "multipart/form-data")
}

func TestUploadExcelRequiresFile(t *testing.T) {
	h := NewImportsHandler(nil)

	body, contentType := multipartBody(t, "", nil)
	req := httptest.NewRequest("POST", "/imports/excel", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.UploadExcel(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file is required")
}

func TestUploadExcelRejectsNonXLSX(t *testing.T) {
	h := NewImportsHandler(nil)

	body, contentType := multipartBody(t, "items.csv", []byte("tag_id,common_name\n"))
	req := httptest.NewRequest("POST", "/imports/excel", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.UploadExcel(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ".xlsx")
}

func TestUploadExcelRejectsCorruptWorkbook(t *testing.T) {
	h := NewImportsHandler(nil)

	body, contentType := multipartBody(t, "items.xlsx", []byte("not a zip archive"))
	req := httptest.NewRequest("POST", "/imports/excel", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.UploadExcel(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "IMPORT_FAILED")
}

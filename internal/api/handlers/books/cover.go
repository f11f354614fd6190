package books

import (
	"context"
	"database/sql"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"bookstore-api/internal/api/httpx"
	storage "bookstore-api/internal/storage/s3"
)

// UploadCover serves POST /books/isbn/{isbn}/cover. The required "cover" part
// fills image_url; an optional "cover_small" part fills image_small_url, and
// when it is absent the small column falls back to the large object key.
func UploadCover(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		isbn, err := isbnParam(r)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		// images are small; 10MB is generous
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
			return
		}

		file, header, err := r.FormFile("cover")
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("missing cover file: %v", err))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !validCoverType(contentType) {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid image type, must be webp, jpeg, or png")
			return
		}

		s3c, err := storage.NewClient(ctx)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, err.Error())
			return
		}

		stamp := time.Now().Unix()
		largeKey := fmt.Sprintf("books/covers/%d-%d.webp", isbn, stamp)

		if err := uploadToBucket(ctx, s3c, largeKey, file, contentType, header.Size); err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("failed to upload: %v", err))
			return
		}
		uploaded := []string{largeKey}

		// optional small variant, falls back to the large key
		smallKey := largeKey
		if small, smallHeader, err := r.FormFile("cover_small"); err == nil {
			defer small.Close()
			smallType := smallHeader.Header.Get("Content-Type")
			if !validCoverType(smallType) {
				cleanupObjects(ctx, s3c, uploaded)
				httpx.ErrorJSON(w, http.StatusBadRequest, "invalid image type, must be webp, jpeg, or png")
				return
			}
			smallKey = fmt.Sprintf("books/covers/%d-%d-small.webp", isbn, stamp)
			if err := uploadToBucket(ctx, s3c, smallKey, small, smallType, smallHeader.Size); err != nil {
				cleanupObjects(ctx, s3c, uploaded)
				httpx.ErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("failed to upload: %v", err))
				return
			}
			uploaded = append(uploaded, smallKey)
		}

		rows, err := saveCoverKeys(ctx, db, isbn, largeKey, smallKey)
		if err != nil {
			cleanupObjects(ctx, s3c, uploaded)
			httpx.ErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("failed to save cover keys: %v", err))
			return
		}
		if rows == 0 {
			cleanupObjects(ctx, s3c, uploaded)
			httpx.ErrorJSON(w, http.StatusNotFound, "book not found")
			return
		}

		downloadURL, err := s3c.GeneratePresignedDownloadURL(ctx, largeKey)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("uploaded but failed to generate url: %v", err))
			return
		}

		httpx.OK(w, map[string]string{
			"cover_url":        downloadURL,
			"object_key":       largeKey,
			"object_key_small": smallKey,
		})
	}
}

// GetCover serves GET /books/isbn/{isbn}/cover and redirects to a presigned
// URL for the stored object.
func GetCover(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		isbn, err := isbnParam(r)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		var coverURL sql.NullString
		err = db.QueryRowContext(ctx,
			`SELECT image_url FROM books WHERE isbn13 = $1`, isbn).Scan(&coverURL)
		if err == sql.ErrNoRows {
			httpx.ErrorJSON(w, http.StatusNotFound, "book not found")
			return
		}
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "database error")
			return
		}
		if !coverURL.Valid || coverURL.String == "" {
			httpx.ErrorJSON(w, http.StatusNotFound, "book has no cover")
			return
		}

		s3c, err := storage.NewClient(ctx)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, err.Error())
			return
		}
		downloadURL, err := s3c.GeneratePresignedDownloadURL(ctx, coverURL.String)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("failed to generate url: %v", err))
			return
		}

		http.Redirect(w, r, downloadURL, http.StatusTemporaryRedirect)
	}
}

func validCoverType(contentType string) bool {
	return contentType == "image/webp" || contentType == "image/jpeg" || contentType == "image/png"
}

// saveCoverKeys points both image columns at the uploaded objects.
func saveCoverKeys(ctx context.Context, db *sql.DB, isbn int64, largeKey, smallKey string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE books SET image_url = $1, image_small_url = $2 WHERE isbn13 = $3`,
		largeKey, smallKey, isbn)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func cleanupObjects(ctx context.Context, s3c *storage.S3Client, keys []string) {
	for _, k := range keys {
		_ = s3c.DeleteObject(ctx, k)
	}
}

// uploadToBucket creates a presigned PUT url and streams the file to it.
// contentLength must be set or R2 rejects the chunked upload.
func uploadToBucket(ctx context.Context, s3c *storage.S3Client, objectKey string, file multipart.File, contentType string, contentLength int64) error {
	uploadURL, err := s3c.GeneratePresignedUploadURL(ctx, objectKey, contentType)
	if err != nil {
		return fmt.Errorf("generate presigned upload url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, file)
	if err != nil {
		return fmt.Errorf("create put request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Length", strconv.FormatInt(contentLength, 10))
	req.ContentLength = contentLength

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload failed status=%d", resp.StatusCode)
	}
	return nil
}

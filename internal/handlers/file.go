package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/venturely/venturely/internal/models"
	"github.com/venturely/venturely/internal/utils"
)

const sniffLen = 512

// UploadFile stores the multipart "file" field and records its metadata.
func (h *Handler) UploadFile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// leave room for the multipart envelope around the file itself
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.deps.MaxUploadBytes+1<<20)

	fileHeader, err := ctx.FormFile("file")

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds maximum upload size"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if fileHeader.Size > h.deps.MaxUploadBytes {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds maximum upload size"})
		return
	}

	src, err := fileHeader.Open()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	body, contentType, err := detectContentType(src, fileHeader.Header.Get("Content-Type"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	name := filepath.Base(fileHeader.Filename)
	key := fmt.Sprintf("%s/%s%s", userID, models.NewID(), strings.ToLower(filepath.Ext(name)))

	url, err := h.deps.Storage.Put(ctx.Request.Context(), key, contentType, body, fileHeader.Size)

	if err != nil {
		h.serverError(ctx, "Failed to store file", err)
		return
	}

	record := models.FileRecord{
		OwnerID:  userID,
		Name:     name,
		URL:      url,
		MimeType: contentType,
		Size:     fileHeader.Size,
	}

	if err := h.deps.Files.Create(ctx.Request.Context(), &record); err != nil {
		h.serverError(ctx, "Failed to record file", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"url":  url,
		"file": record,
	})
}

func (h *Handler) ListFiles(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	files, err := h.deps.Files.ListByOwner(ctx.Request.Context(), userID)

	if err != nil {
		h.serverError(ctx, "Failed to retrieve files", err)
		return
	}

	ctx.JSON(http.StatusOK, files)
}

// detectContentType trusts the part header unless it is missing or generic, in
// which case the first bytes are sniffed. The returned reader yields the full
// content.
func detectContentType(src io.Reader, declared string) (io.Reader, string, error) {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return src, declared, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]

	return io.MultiReader(bytes.NewReader(head), src), http.DetectContentType(head), nil
}

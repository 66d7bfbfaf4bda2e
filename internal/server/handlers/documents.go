package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/server/storage"
	"github.com/iudanet/docsync/pkg/api"
)

// FolderResponse describes one folder
type FolderResponse struct {
	ID            string `json:"id"`
	DocumentCount int    `json:"document_count"`
}

// DocumentsHandler handles the folder and document endpoints
type DocumentsHandler struct {
	logger  *slog.Logger
	storage storage.DocumentStorage
}

// NewDocumentsHandler creates a new documents handler
func NewDocumentsHandler(logger *slog.Logger, storage storage.DocumentStorage) *DocumentsHandler {
	return &DocumentsHandler{
		logger:  logger,
		storage: storage,
	}
}

// GetFolder handles GET /drive/v1/folders/{folderID}.
// Clients use it as the connection handshake.
func (h *DocumentsHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	folderID := r.PathValue("folderID")
	if folderID == "" {
		sendError(h.logger, w, "folder ID is required", http.StatusBadRequest)
		return
	}

	count, err := h.storage.CountDocuments(ctx, folderID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count documents", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, FolderResponse{ID: folderID, DocumentCount: count}, http.StatusOK)
}

// ListDocuments handles GET /drive/v1/folders/{folderID}/documents.
// Tombstones are included so clients can propagate deletions.
func (h *DocumentsHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	folderID := r.PathValue("folderID")

	infos, err := h.storage.ListDocuments(ctx, folderID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list documents",
			slog.String("folder_id", folderID),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ListDocumentsResponse{Documents: make([]api.DocumentInfo, 0, len(infos))}
	for _, info := range infos {
		resp.Documents = append(resp.Documents, api.DocumentInfo{
			ID:      info.ID,
			Rev:     info.Rev,
			Deleted: info.Deleted,
		})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// GetDocument handles GET /drive/v1/folders/{folderID}/documents/{docID}
func (h *DocumentsHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	folderID := r.PathValue("folderID")
	docID := r.PathValue("docID")

	doc, err := h.storage.GetDocument(ctx, folderID, docID)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}

		h.logger.ErrorContext(ctx, "failed to get document",
			slog.String("doc_id", docID),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.Document{
		ID:        doc.ID,
		Rev:       doc.Rev,
		Data:      doc.Data,
		Deleted:   doc.Deleted,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, http.StatusOK)
}

// PutDocument handles PUT /drive/v1/folders/{folderID}/documents/{docID}
func (h *DocumentsHandler) PutDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	folderID := r.PathValue("folderID")
	docID := r.PathValue("docID")

	var req api.Document
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode document", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.ID == "" {
		req.ID = docID
	}

	if req.ID != docID {
		sendError(h.logger, w, "document ID does not match the URL", http.StatusBadRequest)
		return
	}

	if req.Rev == "" {
		sendError(h.logger, w, "revision marker is required", http.StatusBadRequest)
		return
	}

	doc := &models.Document{
		ID:        req.ID,
		Rev:       req.Rev,
		Data:      req.Data,
		Deleted:   req.Deleted,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}

	if err := h.storage.SaveDocument(ctx, folderID, doc); err != nil {
		h.logger.ErrorContext(ctx, "failed to save document",
			slog.String("doc_id", docID),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "document stored",
		slog.String("folder_id", folderID),
		slog.String("doc_id", docID),
		slog.String("rev", doc.Rev))

	sendJSON(h.logger, w, api.PutDocumentResponse{ID: doc.ID, Rev: doc.Rev}, http.StatusOK)
}

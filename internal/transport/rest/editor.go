package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/footprints-app/footprints-backend/internal/domain"
	"github.com/footprints-app/footprints-backend/internal/service/editor"
	"github.com/footprints-app/footprints-backend/internal/service/editor/assets"
)

// editorService defines the minimal interface needed by EditorHandler.
type editorService interface {
	Assets() []assets.Asset
	PlaceAsset(ctx context.Context, journalID uuid.UUID, slot int, input editor.PlaceAssetInput) (*domain.Page, domain.Item, error)
	UploadImage(ctx context.Context, journalID uuid.UUID, slot int, input editor.UploadImageInput) (*domain.Page, domain.Item, error)
	MoveItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID, input editor.MoveInput) (*domain.Page, domain.Item, error)
	ResizeItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID, input editor.ResizeInput) (*domain.Page, domain.Item, error)
	RotateItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID, input editor.RotateInput) (*domain.Page, domain.Item, error)
	EditItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID, input editor.EditInput) (*domain.Page, domain.Item, error)
	DeleteItem(ctx context.Context, journalID uuid.UUID, slot int, itemID uuid.UUID) (*domain.Page, error)
}

// EditorHandler serves the canvas editor endpoints: the sidebar asset
// catalog, item placement, and item mutations.
type EditorHandler struct {
	svc editorService
	log *slog.Logger
}

// NewEditorHandler creates an EditorHandler.
func NewEditorHandler(svc editorService, logger *slog.Logger) *EditorHandler {
	return &EditorHandler{svc: svc, log: logger.With("handler", "editor")}
}

type assetResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	DataURI  string  `json:"dataUri,omitempty"`
	Editable bool    `json:"editable"`
}

// Assets handles GET /assets.
func (h *EditorHandler) Assets(w http.ResponseWriter, r *http.Request) {
	catalog := h.svc.Assets()
	out := make([]assetResponse, len(catalog))
	for i, a := range catalog {
		out[i] = assetResponse{
			ID:       a.ID,
			Name:     a.Name,
			Type:     a.Kind.String(),
			Width:    a.Width,
			Height:   a.Height,
			DataURI:  a.DataURI,
			Editable: a.Editable,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// addItemRequest places new content on the canvas. AssetID drops a sidebar
// asset; Content uploads a user image. Exactly one of the two is set.
type addItemRequest struct {
	AssetID string  `json:"assetId,omitempty"`
	Content string  `json:"content,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type itemMutationResponse struct {
	Item domain.Item  `json:"item"`
	Page pageResponse `json:"page"`
}

// AddItem handles POST /journals/{journalID}/pages/{slot}/items.
func (h *EditorHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		page *domain.Page
		item domain.Item
		err  error
	)
	if req.AssetID != "" {
		page, item, err = h.svc.PlaceAsset(r.Context(), journalID, slot, editor.PlaceAssetInput{
			AssetID: req.AssetID,
			X:       req.X,
			Y:       req.Y,
		})
	} else {
		page, item, err = h.svc.UploadImage(r.Context(), journalID, slot, editor.UploadImageInput{
			Content: req.Content,
			X:       req.X,
			Y:       req.Y,
		})
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemMutationResponse{Item: item, Page: toPageResponse(page)})
}

// updateItemRequest carries one item mutation, discriminated by Action.
type updateItemRequest struct {
	Action   string   `json:"action"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Content  *string  `json:"content,omitempty"`
}

// UpdateItem handles PATCH /journals/{journalID}/pages/{slot}/items/{itemID}.
func (h *EditorHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		page *domain.Page
		item domain.Item
		err  error
	)
	switch req.Action {
	case "move":
		if req.X == nil || req.Y == nil {
			writeError(w, http.StatusBadRequest, "move requires x and y")
			return
		}
		page, item, err = h.svc.MoveItem(r.Context(), journalID, slot, itemID, editor.MoveInput{X: *req.X, Y: *req.Y})
	case "resize":
		if req.Width == nil || req.Height == nil {
			writeError(w, http.StatusBadRequest, "resize requires width and height")
			return
		}
		page, item, err = h.svc.ResizeItem(r.Context(), journalID, slot, itemID, editor.ResizeInput{Width: *req.Width, Height: *req.Height})
	case "rotate":
		if req.Rotation == nil {
			writeError(w, http.StatusBadRequest, "rotate requires rotation")
			return
		}
		page, item, err = h.svc.RotateItem(r.Context(), journalID, slot, itemID, editor.RotateInput{Rotation: *req.Rotation})
	case "edit":
		if req.Content == nil {
			writeError(w, http.StatusBadRequest, "edit requires content")
			return
		}
		page, item, err = h.svc.EditItem(r.Context(), journalID, slot, itemID, editor.EditInput{Content: *req.Content})
	default:
		writeError(w, http.StatusBadRequest, "unknown action: "+req.Action)
		return
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itemMutationResponse{Item: item, Page: toPageResponse(page)})
}

// DeleteItem handles DELETE /journals/{journalID}/pages/{slot}/items/{itemID}.
func (h *EditorHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	journalID, ok := pathUUID(w, r, "journalID")
	if !ok {
		return
	}
	slot, ok := pathSlot(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	page, err := h.svc.DeleteItem(r.Context(), journalID, slot, itemID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page))
}

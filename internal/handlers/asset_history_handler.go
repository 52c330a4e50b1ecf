package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investapp/internal/commands"
	"investapp/internal/pagination"
)

// AssetHistoryHandler handles asset history requests.
type AssetHistoryHandler struct {
	histories *commands.AssetHistoryCommands
}

// NewAssetHistoryHandler creates a new AssetHistoryHandler.
func NewAssetHistoryHandler(histories *commands.AssetHistoryCommands) *AssetHistoryHandler {
	return &AssetHistoryHandler{histories: histories}
}

// CreateAssetHistory handles the recording of an asset value
// @Summary     Record asset value
// @Description Append a dated value record for an asset. Admin only.
// @Tags        asset-histories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body commands.SaveAssetHistoryRequest true "Value record"
// @Success     201 {object} dto.AssetHistoryDTO "Record created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown asset"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /asset-histories [post]
func (h *AssetHistoryHandler) CreateAssetHistory(c *gin.Context) {
	var req commands.SaveAssetHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history, err := h.histories.Create(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset_history": history})
}

// GetAssetHistoryByID handles the retrieval of a single record
// @Summary     Get asset history by ID
// @Description Get one value record by id
// @Tags        asset-histories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} dto.AssetHistoryDTO "Record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /asset-histories/{id} [get]
func (h *AssetHistoryHandler) GetAssetHistoryByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	history, err := h.histories.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset_history": history})
}

// UpdateAssetHistory handles record edits
// @Summary     Update asset history
// @Description Overwrite a value record. Admin only.
// @Tags        asset-histories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Param       request body commands.SaveAssetHistoryRequest true "Updated record"
// @Success     200 {object} dto.AssetHistoryDTO "Updated record"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown asset"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /asset-histories/{id} [put]
func (h *AssetHistoryHandler) UpdateAssetHistory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req commands.SaveAssetHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history, err := h.histories.Update(id, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset_history": history})
}

// DeleteAssetHistory handles record removal
// @Summary     Delete asset history
// @Description Delete a value record by id. Admin only.
// @Tags        asset-histories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Record ID"
// @Success     200 {object} MessageResponse "Record deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /asset-histories/{id} [delete]
func (h *AssetHistoryHandler) DeleteAssetHistory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.histories.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset history deleted successfully"})
}

// GetAssetHistories handles the per-asset listing, newest first
// @Summary     List asset histories
// @Description List the value records of one asset, newest first
// @Tags        asset-histories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[dto.AssetHistoryDTO] "Records"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /assets/{id}/histories [get]
func (h *AssetHistoryHandler) GetAssetHistories(c *gin.Context) {
	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	histories, err := h.histories.GetAllByAsset(assetID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, histories)
}

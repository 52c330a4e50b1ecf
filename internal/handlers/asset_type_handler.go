package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investapp/internal/commands"
	"investapp/internal/pagination"
)

// AssetTypeHandler handles asset type requests.
type AssetTypeHandler struct {
	assetTypes *commands.AssetTypeCommands
}

// NewAssetTypeHandler creates a new AssetTypeHandler.
func NewAssetTypeHandler(assetTypes *commands.AssetTypeCommands) *AssetTypeHandler {
	return &AssetTypeHandler{assetTypes: assetTypes}
}

// CreateAssetType handles the creation of a new asset type
// @Summary     Create an asset type
// @Description Create a new asset type. Admin only.
// @Tags        asset-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body commands.SaveAssetTypeRequest true "Asset type details"
// @Success     201 {object} dto.AssetTypeDTO "Asset type created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /asset-types [post]
func (h *AssetTypeHandler) CreateAssetType(c *gin.Context) {
	var req commands.SaveAssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assetType, err := h.assetTypes.Create(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset_type": assetType})
}

// GetAssetTypes handles the paginated asset type listing
// @Summary     List asset types
// @Description List asset types with pagination
// @Tags        asset-types
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[dto.AssetTypeDTO] "Asset types"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /asset-types [get]
func (h *AssetTypeHandler) GetAssetTypes(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assetTypes, err := h.assetTypes.GetAll(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assetTypes)
}

// GetAssetTypeByID handles the retrieval of a single asset type
// @Summary     Get asset type by ID
// @Description Get one asset type by id
// @Tags        asset-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset type ID"
// @Success     200 {object} dto.AssetTypeDTO "Asset type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset type not found"
// @Router      /asset-types/{id} [get]
func (h *AssetTypeHandler) GetAssetTypeByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetType, err := h.assetTypes.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset_type": assetType})
}

// UpdateAssetType handles asset type edits
// @Summary     Update asset type
// @Description Overwrite an asset type. Admin only.
// @Tags        asset-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset type ID"
// @Param       request body commands.SaveAssetTypeRequest true "Updated details"
// @Success     200 {object} dto.AssetTypeDTO "Updated asset type"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset type not found"
// @Router      /asset-types/{id} [put]
func (h *AssetTypeHandler) UpdateAssetType(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req commands.SaveAssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assetType, err := h.assetTypes.Update(id, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset_type": assetType})
}

// DeleteAssetType handles asset type removal
// @Summary     Delete asset type
// @Description Delete an asset type by id. Admin only.
// @Tags        asset-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset type ID"
// @Success     200 {object} MessageResponse "Asset type deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset type not found"
// @Router      /asset-types/{id} [delete]
func (h *AssetTypeHandler) DeleteAssetType(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetTypes.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset type deleted successfully"})
}

// GetAssetTypesWithAssets handles the v2 listing with nested assets
// @Summary     List asset types with assets
// @Description List every asset type with its assets nested. Returns 204 when there are none.
// @Tags        asset-types
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} dto.AssetTypeWithAssetsDTO "Asset types with assets"
// @Success     204 "No asset types"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /v2/asset-types [get]
func (h *AssetTypeHandler) GetAssetTypesWithAssets(c *gin.Context) {
	assetTypes, err := h.assetTypes.GetAllWithAssets()
	if err != nil {
		respondWithError(c, err)
		return
	}
	if len(assetTypes) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset_types": assetTypes})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investapp/internal/commands"
	"investapp/internal/pagination"
)

// AssetHandler handles asset requests.
type AssetHandler struct {
	assets *commands.AssetCommands
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assets *commands.AssetCommands) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// CreateAsset handles the creation of a new asset
// @Summary     Create an asset
// @Description Create a new asset under an existing asset type. Admin only.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body commands.SaveAssetRequest true "Asset details"
// @Success     201 {object} dto.AssetDTO "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown asset type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req commands.SaveAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.assets.Create(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAssets handles the paginated asset listing
// @Summary     List assets
// @Description List assets with their types, paginated
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[dto.AssetDTO] "Assets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assets, err := h.assets.GetAll(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

// GetAssetByID handles the retrieval of a single asset
// @Summary     Get asset by ID
// @Description Get one asset with its type loaded
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} dto.AssetDTO "Asset"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAssetByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assets.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset handles asset edits
// @Summary     Update asset
// @Description Overwrite an asset. Admin only.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       request body commands.SaveAssetRequest true "Updated details"
// @Success     200 {object} dto.AssetDTO "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown asset type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req commands.SaveAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.assets.Update(id, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles asset removal
// @Summary     Delete asset
// @Description Delete an asset by id. Admin only.
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} MessageResponse "Asset deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assets.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

// GetAssetsByPortfolio handles the filtered asset-by-portfolio listing
// @Summary     List portfolio assets
// @Description List the assets linked to a portfolio with optional name and type filters and ordering
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       asset_name query string false "Name substring filter (case sensitive)"
// @Param       asset_type_id query string false "Asset type filter"
// @Param       order_by query int false "1 orders by name ascending, 2 by current value descending"
// @Success     200 {array} dto.AssetForPortfolioDTO "Assets with current values"
// @Failure     400 {object} ErrorResponse "Invalid filters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolios/{id}/assets [get]
func (h *AssetHandler) GetAssetsByPortfolio(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query commands.PortfolioAssetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assets, err := h.assets.GetAllByPortfolioID(portfolioID, query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investapp/internal/commands"
	"investapp/internal/pagination"
)

// InvestmentAssetHandler handles portfolio-asset link requests.
type InvestmentAssetHandler struct {
	links *commands.InvestmentAssetCommands
}

// NewInvestmentAssetHandler creates a new InvestmentAssetHandler.
func NewInvestmentAssetHandler(links *commands.InvestmentAssetCommands) *InvestmentAssetHandler {
	return &InvestmentAssetHandler{links: links}
}

// CreateInvestmentAsset handles linking an asset to a portfolio
// @Summary     Link asset to portfolio
// @Description Link an existing asset to a portfolio the authenticated user owns
// @Tags        investment-assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body commands.SaveInvestmentAssetRequest true "Link details"
// @Success     201 {object} dto.InvestmentAssetDTO "Link created"
// @Failure     400 {object} ErrorResponse "Invalid input, unknown ends, or portfolio not owned"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investment-assets [post]
func (h *InvestmentAssetHandler) CreateInvestmentAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req commands.SaveInvestmentAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.links.Create(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment_asset": link})
}

// GetInvestmentAssetByID handles the retrieval of a single link
// @Summary     Get investment asset by ID
// @Description Get one portfolio-asset link with its asset loaded
// @Tags        investment-assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Link ID"
// @Success     200 {object} dto.InvestmentAssetDTO "Link"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Link not found"
// @Router      /investment-assets/{id} [get]
func (h *InvestmentAssetHandler) GetInvestmentAssetByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	link, err := h.links.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment_asset": link})
}

// DeleteInvestmentAsset handles unlinking an asset from a portfolio
// @Summary     Unlink asset from portfolio
// @Description Remove a link from a portfolio the authenticated user owns
// @Tags        investment-assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Link ID"
// @Success     200 {object} MessageResponse "Link removed"
// @Failure     400 {object} ErrorResponse "Portfolio not owned"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Link not found"
// @Router      /investment-assets/{id} [delete]
func (h *InvestmentAssetHandler) DeleteInvestmentAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.links.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Investment asset deleted successfully"})
}

// GetInvestmentAssetsByPortfolio handles the per-portfolio link listing
// @Summary     List portfolio links
// @Description List the link rows of one portfolio, paginated
// @Tags        investment-assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[dto.InvestmentAssetDTO] "Links"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolios/{id}/investment-assets [get]
func (h *InvestmentAssetHandler) GetInvestmentAssetsByPortfolio(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	links, err := h.links.GetAllByPortfolio(portfolioID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, links)
}

package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"investapp/internal/dto"
	"investapp/internal/middleware"
	"investapp/internal/models"
)

// Home redirects to the portfolio listing.
func (h *Handlers) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/portfolios")
}

// Portfolios renders the caller's portfolio listing.
func (h *Handlers) Portfolios(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	portfolios := h.portfolios.GetAllByUser(userID)
	vms := make([]dto.PortfolioViewModel, 0, len(portfolios))
	for _, p := range portfolios {
		vms = append(vms, dto.PortfolioToViewModel(p))
	}

	c.HTML(http.StatusOK, "portfolios.html", gin.H{
		"Username":   c.GetString(middleware.ContextUsername),
		"Portfolios": vms,
	})
}

// ShowPortfolioForm renders the create or edit form. With an :id path
// parameter it pre-fills the form from the existing portfolio.
func (h *Handlers) ShowPortfolioForm(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	data := gin.H{"Portfolio": dto.PortfolioViewModel{}}
	if id := c.Param("id"); id != "" {
		portfolio := h.portfolios.GetByID(id, userID)
		if portfolio == nil {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Portfolio not found"})
			return
		}
		data["Portfolio"] = dto.PortfolioToViewModel(*portfolio)
	}

	c.HTML(http.StatusOK, "portfolio_form.html", data)
}

// SavePortfolio creates or updates a portfolio from the submitted form.
func (h *Handlers) SavePortfolio(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	name := c.PostForm("name")
	description := c.PostForm("description")
	if name == "" {
		c.HTML(http.StatusBadRequest, "portfolio_form.html", gin.H{
			"Error": "name is required",
			"Portfolio": dto.PortfolioViewModel{
				ID:          c.Param("id"),
				Name:        name,
				Description: description,
			},
		})
		return
	}

	if id := c.Param("id"); id != "" {
		d := dto.PortfolioDTO{Name: name, Description: description, UserID: userID}
		if !h.portfolios.Update(id, userID, d) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Portfolio not found"})
			return
		}
	} else {
		d := dto.PortfolioDTO{Name: name, Description: description, UserID: userID}
		if h.portfolios.Add(d) == nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not save the portfolio"})
			return
		}
	}

	c.Redirect(http.StatusFound, "/portfolios")
}

// DeletePortfolio removes a portfolio the caller owns.
func (h *Handlers) DeletePortfolio(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if !h.portfolios.Delete(c.Param("id"), userID) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Portfolio not found"})
		return
	}
	c.Redirect(http.StatusFound, "/portfolios")
}

// PortfolioDetail renders one portfolio with its assets, applying the
// optional name and type filters and ordering from the query string.
func (h *Handlers) PortfolioDetail(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	portfolio := h.portfolios.GetByID(c.Param("id"), userID)
	if portfolio == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Portfolio not found"})
		return
	}

	assetName := c.Query("asset_name")
	assetTypeID := c.Query("asset_type_id")
	orderBy := models.AssetOrderByName
	if raw := c.Query("order_by"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && models.AssetOrder(n).Valid() {
			orderBy = models.AssetOrder(n)
		}
	}

	assets := h.assets.GetAllAssetsByPortfolioID(portfolio.ID, assetName, assetTypeID, orderBy)
	links := h.links.GetAllByPortfolio(portfolio.ID)

	assetTypes := h.assetTypes.GetAll()
	typeVMs := make([]dto.AssetTypeViewModel, 0, len(assetTypes))
	for _, at := range assetTypes {
		typeVMs = append(typeVMs, dto.AssetTypeToViewModel(at))
	}
	linkVMs := make([]dto.InvestmentAssetViewModel, 0, len(links))
	for _, l := range links {
		linkVMs = append(linkVMs, dto.InvestmentAssetToViewModel(l))
	}

	c.HTML(http.StatusOK, "portfolio_detail.html", gin.H{
		"Portfolio":   dto.PortfolioToViewModel(*portfolio),
		"Assets":      assets,
		"Links":       linkVMs,
		"AssetTypes":  typeVMs,
		"AllAssets":   h.assets.GetAll(),
		"AssetName":   assetName,
		"AssetTypeID": assetTypeID,
		"OrderBy":     int(orderBy),
	})
}

// LinkAsset associates an asset with the portfolio from the detail page.
func (h *Handlers) LinkAsset(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	portfolioID := c.Param("id")

	if h.portfolios.GetByID(portfolioID, userID) == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Portfolio not found"})
		return
	}

	d := dto.InvestmentAssetDTO{
		AssetID:               c.PostForm("asset_id"),
		InvestmentPortfolioID: portfolioID,
	}
	if h.links.Add(d) == nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not link the asset"})
		return
	}

	c.Redirect(http.StatusFound, "/portfolios/"+portfolioID)
}

// UnlinkAsset removes a portfolio-asset link from the detail page.
func (h *Handlers) UnlinkAsset(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	link := h.links.GetByID(c.Param("id"))
	if link == nil || h.portfolios.GetByID(link.InvestmentPortfolioID, userID) == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Investment asset not found"})
		return
	}

	if !h.links.Delete(link.ID) {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not unlink the asset"})
		return
	}

	c.Redirect(http.StatusFound, "/portfolios/"+link.InvestmentPortfolioID)
}

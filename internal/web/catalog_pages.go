package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"investapp/internal/dto"
)

var (
	errInvalidValue     = errors.New("a numeric value is required")
	errInvalidValueDate = errors.New("a date in YYYY-MM-DD format is required")
)

// AssetTypes renders the admin asset type listing.
func (h *Handlers) AssetTypes(c *gin.Context) {
	assetTypes := h.assetTypes.GetAll()
	vms := make([]dto.AssetTypeViewModel, 0, len(assetTypes))
	for _, at := range assetTypes {
		vms = append(vms, dto.AssetTypeToViewModel(at))
	}

	c.HTML(http.StatusOK, "asset_types.html", gin.H{"AssetTypes": vms})
}

// ShowAssetTypeForm renders the create or edit form. With an :id path
// parameter it pre-fills the form from the existing asset type.
func (h *Handlers) ShowAssetTypeForm(c *gin.Context) {
	data := gin.H{"AssetType": dto.AssetTypeViewModel{}}
	if id := c.Param("id"); id != "" {
		assetType := h.assetTypes.GetByID(id)
		if assetType == nil {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset type not found"})
			return
		}
		data["AssetType"] = dto.AssetTypeToViewModel(*assetType)
	}

	c.HTML(http.StatusOK, "asset_type_form.html", data)
}

// SaveAssetType creates or updates an asset type from the submitted form.
func (h *Handlers) SaveAssetType(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	if name == "" {
		c.HTML(http.StatusBadRequest, "asset_type_form.html", gin.H{
			"Error": "name is required",
			"AssetType": dto.AssetTypeViewModel{
				ID:          c.Param("id"),
				Name:        name,
				Description: description,
			},
		})
		return
	}

	d := dto.AssetTypeDTO{Name: name, Description: description}
	if id := c.Param("id"); id != "" {
		if !h.assetTypes.Update(id, d) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset type not found"})
			return
		}
	} else {
		if h.assetTypes.Add(d) == nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not save the asset type"})
			return
		}
	}

	c.Redirect(http.StatusFound, "/admin/asset-types")
}

// DeleteAssetType removes an asset type.
func (h *Handlers) DeleteAssetType(c *gin.Context) {
	if !h.assetTypes.Delete(c.Param("id")) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset type not found"})
		return
	}
	c.Redirect(http.StatusFound, "/admin/asset-types")
}

// Assets renders the admin asset listing with each asset's current value.
func (h *Handlers) Assets(c *gin.Context) {
	c.HTML(http.StatusOK, "assets.html", gin.H{"Assets": h.assets.GetAllWithInclude()})
}

// ShowAssetForm renders the create or edit form. With an :id path parameter
// it pre-fills the form from the existing asset.
func (h *Handlers) ShowAssetForm(c *gin.Context) {
	data := gin.H{"Asset": dto.AssetViewModel{}}
	if id := c.Param("id"); id != "" {
		asset := h.assets.GetByID(id)
		if asset == nil {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset not found"})
			return
		}
		data["Asset"] = dto.AssetToViewModel(*asset)
	}

	assetTypes := h.assetTypes.GetAll()
	typeVMs := make([]dto.AssetTypeViewModel, 0, len(assetTypes))
	for _, at := range assetTypes {
		typeVMs = append(typeVMs, dto.AssetTypeToViewModel(at))
	}
	data["AssetTypes"] = typeVMs

	c.HTML(http.StatusOK, "asset_form.html", data)
}

// SaveAsset creates or updates an asset from the submitted form.
func (h *Handlers) SaveAsset(c *gin.Context) {
	d := dto.AssetDTO{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Symbol:      c.PostForm("symbol"),
		AssetTypeID: c.PostForm("asset_type_id"),
	}
	if d.Name == "" || d.AssetTypeID == "" {
		h.renderAssetFormError(c, d, "name and asset type are required")
		return
	}

	if id := c.Param("id"); id != "" {
		if !h.assets.Update(id, d) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset not found"})
			return
		}
	} else {
		if h.assets.Add(d) == nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not save the asset"})
			return
		}
	}

	c.Redirect(http.StatusFound, "/admin/assets")
}

func (h *Handlers) renderAssetFormError(c *gin.Context, d dto.AssetDTO, msg string) {
	assetTypes := h.assetTypes.GetAll()
	typeVMs := make([]dto.AssetTypeViewModel, 0, len(assetTypes))
	for _, at := range assetTypes {
		typeVMs = append(typeVMs, dto.AssetTypeToViewModel(at))
	}

	d.ID = c.Param("id")
	c.HTML(http.StatusBadRequest, "asset_form.html", gin.H{
		"Error":      msg,
		"Asset":      dto.AssetToViewModel(d),
		"AssetTypes": typeVMs,
	})
}

// DeleteAsset removes an asset.
func (h *Handlers) DeleteAsset(c *gin.Context) {
	if !h.assets.Delete(c.Param("id")) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset not found"})
		return
	}
	c.Redirect(http.StatusFound, "/admin/assets")
}

// AssetHistories renders one asset's value history, newest first, with an
// inline form to record a new value.
func (h *Handlers) AssetHistories(c *gin.Context) {
	asset := h.assets.GetByID(c.Param("id"))
	if asset == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset not found"})
		return
	}

	histories := h.histories.GetAllByAsset(asset.ID)
	vms := make([]dto.AssetHistoryViewModel, 0, len(histories))
	for _, record := range histories {
		vms = append(vms, dto.AssetHistoryToViewModel(record))
	}

	c.HTML(http.StatusOK, "asset_histories.html", gin.H{
		"Asset":     dto.AssetToViewModel(*asset),
		"Histories": vms,
	})
}

// AddAssetHistory records a new value for the asset from the inline form on
// the history page.
func (h *Handlers) AddAssetHistory(c *gin.Context) {
	asset := h.assets.GetByID(c.Param("id"))
	if asset == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset not found"})
		return
	}

	value, valueDate, err := parseHistoryForm(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": err.Error()})
		return
	}

	d := dto.AssetHistoryDTO{Value: value, ValueDate: valueDate, AssetID: asset.ID}
	if h.histories.Add(d) == nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not save the value"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/assets/"+asset.ID+"/histories")
}

// ShowAssetHistoryForm renders the edit form for one history record.
func (h *Handlers) ShowAssetHistoryForm(c *gin.Context) {
	record := h.histories.GetByID(c.Param("id"))
	if record == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset history not found"})
		return
	}

	c.HTML(http.StatusOK, "asset_history_form.html", gin.H{
		"History": dto.AssetHistoryToViewModel(*record),
	})
}

// SaveAssetHistory applies the edit form to a history record.
func (h *Handlers) SaveAssetHistory(c *gin.Context) {
	id := c.Param("id")
	record := h.histories.GetByID(id)
	if record == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset history not found"})
		return
	}

	value, valueDate, err := parseHistoryForm(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "asset_history_form.html", gin.H{
			"Error":   err.Error(),
			"History": dto.AssetHistoryToViewModel(*record),
		})
		return
	}

	d := dto.AssetHistoryDTO{Value: value, ValueDate: valueDate, AssetID: record.AssetID}
	if !h.histories.Update(id, d) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset history not found"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/assets/"+record.AssetID+"/histories")
}

// DeleteAssetHistory removes a history record and returns to its asset's
// history page.
func (h *Handlers) DeleteAssetHistory(c *gin.Context) {
	record := h.histories.GetByID(c.Param("id"))
	if record == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Asset history not found"})
		return
	}

	if !h.histories.Delete(record.ID) {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not delete the value"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/assets/"+record.AssetID+"/histories")
}

// parseHistoryForm reads the value and date fields shared by the history
// forms. The date field uses the HTML date input format.
func parseHistoryForm(c *gin.Context) (decimal.Decimal, time.Time, error) {
	value, err := decimal.NewFromString(c.PostForm("value"))
	if err != nil {
		return decimal.Zero, time.Time{}, errInvalidValue
	}
	valueDate, err := time.Parse("2006-01-02", c.PostForm("value_date"))
	if err != nil {
		return decimal.Zero, time.Time{}, errInvalidValueDate
	}
	return value, valueDate, nil
}

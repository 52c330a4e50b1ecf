// Package dto defines the request/response shapes exchanged by the API and
// web layers, and the explicit mapping functions between entities, DTOs and
// view models. Navigation properties are always dropped when mapping back
// toward the entity.
package dto

import "investapp/internal/models"

// AssetTypeDTO is the transport shape for an asset type.
type AssetTypeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AssetTypeWithAssetsDTO is the v2 listing shape including linked assets.
type AssetTypeWithAssetsDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Assets      []AssetDTO `json:"assets"`
}

// AssetTypeViewModel is the server-rendered page shape for an asset type.
type AssetTypeViewModel struct {
	ID          string
	Name        string
	Description string
}

// AssetTypeToDTO maps an entity to its DTO.
func AssetTypeToDTO(e *models.AssetType) AssetTypeDTO {
	return AssetTypeDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
	}
}

// AssetTypeToWithAssetsDTO maps an entity with loaded assets to the v2 shape.
func AssetTypeToWithAssetsDTO(e *models.AssetType) AssetTypeWithAssetsDTO {
	assets := make([]AssetDTO, 0, len(e.Assets))
	for i := range e.Assets {
		assets = append(assets, AssetToDTO(&e.Assets[i]))
	}
	return AssetTypeWithAssetsDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Assets:      assets,
	}
}

// AssetTypeFromDTO maps a DTO back to an entity. Navigation collections are
// not reconstructed.
func AssetTypeFromDTO(d AssetTypeDTO) models.AssetType {
	return models.AssetType{
		Base:        models.Base{ID: d.ID},
		Name:        d.Name,
		Description: d.Description,
	}
}

// AssetTypeToViewModel maps a DTO to the page view model.
func AssetTypeToViewModel(d AssetTypeDTO) AssetTypeViewModel {
	return AssetTypeViewModel(d)
}

// AssetTypeFromViewModel maps a page view model back to a DTO.
func AssetTypeFromViewModel(vm AssetTypeViewModel) AssetTypeDTO {
	return AssetTypeDTO(vm)
}

package terrain

import "image/color"

// WaterLevel is the elevation at or below which a tile is water.
const WaterLevel = 0.30

// Biome classifies a tile from its elevation and moisture.
type Biome uint8

const (
	Ocean Biome = iota
	Beach
	Marsh
	SubtropicalDesert
	Grassland
	TropicalSeasonalForest
	TropicalRainForest
	TemperateDesert
	TemperateDeciduousForest
	TemperateRainForest
	Shrubland
	Taiga
	Scorched
	Bare
	Tundra
	Snow

	// BiomeCount is the number of biomes.
	BiomeCount
)

type biomeInfo struct {
	name   string
	growth float64
	color  color.RGBA
}

var biomes = [BiomeCount]biomeInfo{
	Ocean:                    {"ocean", 0, color.RGBA{68, 68, 122, 255}},
	Beach:                    {"beach", 0.25, color.RGBA{160, 144, 119, 255}},
	Marsh:                    {"marsh", 0.55, color.RGBA{47, 102, 102, 255}},
	SubtropicalDesert:        {"subtropical_desert", 0.10, color.RGBA{210, 185, 139, 255}},
	Grassland:                {"grassland", 0.60, color.RGBA{136, 170, 85, 255}},
	TropicalSeasonalForest:   {"tropical_seasonal_forest", 0.90, color.RGBA{85, 153, 68, 255}},
	TropicalRainForest:       {"tropical_rain_forest", 1.00, color.RGBA{51, 119, 85, 255}},
	TemperateDesert:          {"temperate_desert", 0.15, color.RGBA{201, 210, 155, 255}},
	TemperateDeciduousForest: {"temperate_deciduous_forest", 0.85, color.RGBA{103, 148, 89, 255}},
	TemperateRainForest:      {"temperate_rain_forest", 0.95, color.RGBA{68, 136, 85, 255}},
	Shrubland:                {"shrubland", 0.40, color.RGBA{136, 153, 119, 255}},
	Taiga:                    {"taiga", 0.50, color.RGBA{153, 170, 119, 255}},
	Scorched:                 {"scorched", 0, color.RGBA{85, 85, 85, 255}},
	Bare:                     {"bare", 0.05, color.RGBA{136, 136, 136, 255}},
	Tundra:                   {"tundra", 0.20, color.RGBA{187, 187, 170, 255}},
	Snow:                     {"snow", 0, color.RGBA{221, 221, 228, 255}},
}

// String returns the snake_case biome name.
func (b Biome) String() string {
	if b >= BiomeCount {
		return "unknown"
	}
	return biomes[b].name
}

// GrowthPotential returns how well plants grow in the biome, in [0, 1].
func (b Biome) GrowthPotential() float64 {
	if b >= BiomeCount {
		return 0
	}
	return biomes[b].growth
}

// Color returns the map color of the biome.
func (b Biome) Color() color.RGBA {
	if b >= BiomeCount {
		return color.RGBA{A: 255}
	}
	return biomes[b].color
}

// Classify maps elevation e and moisture m (both in [0, 1]) to a biome.
func Classify(e, m float64) Biome {
	switch {
	case e <= WaterLevel:
		return Ocean
	case e <= 0.35:
		if m < 0.40 {
			return Beach
		}
		return Marsh
	case e <= 0.55:
		switch {
		case m < 0.16:
			return SubtropicalDesert
		case m < 0.33:
			return Grassland
		case m < 0.66:
			return TropicalSeasonalForest
		default:
			return TropicalRainForest
		}
	case e <= 0.70:
		switch {
		case m < 0.16:
			return TemperateDesert
		case m < 0.50:
			return Grassland
		case m < 0.83:
			return TemperateDeciduousForest
		default:
			return TemperateRainForest
		}
	case e <= 0.85:
		switch {
		case m < 0.33:
			return TemperateDesert
		case m < 0.66:
			return Shrubland
		default:
			return Taiga
		}
	default:
		switch {
		case m < 0.10:
			return Scorched
		case m < 0.20:
			return Bare
		case m < 0.50:
			return Tundra
		default:
			return Snow
		}
	}
}

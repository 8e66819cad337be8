package io

import (
	"fmt"
	"strconv"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
)

const (
	ToolVendor = "idlab-discover"
	ToolName   = "TrustScore-cli"

	propertyPrefix = "trustscore:"
)

// componentType maps artifact categories onto CycloneDX component types.
func componentType(c category.Category) cdx.ComponentType {
	switch c {
	case category.Model:
		return cdx.ComponentTypeMachineLearningModel
	case category.Dataset:
		return cdx.ComponentTypeData
	default:
		return cdx.ComponentTypeLibrary
	}
}

// BuildBOM builds a CycloneDX BOM with one component per classified result.
// Scores and size fitness are attached as trustscore:* properties.
func BuildBOM(results []scoring.Result, toolVersion string) *cdx.BOM {
	bom := cdx.NewBOM()
	bom.SerialNumber = "urn:uuid:" + uuid.New().String()
	if toolVersion == "" {
		toolVersion = "v0.0.0"
	}
	bom.Metadata = &cdx.Metadata{
		Timestamp: time.Now().Format(time.RFC3339),
		Tools: &cdx.ToolsChoice{
			Components: &[]cdx.Component{{
				Type:         cdx.ComponentTypeApplication,
				Manufacturer: &cdx.OrganizationalEntity{Name: ToolVendor},
				Name:         ToolName,
				Version:      toolVersion,
			}},
		},
	}

	components := make([]cdx.Component, 0, len(results))
	for _, r := range results {
		if !r.Category.Valid() {
			continue
		}
		components = append(components, component(r))
	}
	bom.Components = &components
	return bom
}

func component(r scoring.Result) cdx.Component {
	refType := cdx.ERTypeWebsite
	if r.Category == category.Code {
		refType = cdx.ERTypeVCS
	}

	props := []cdx.Property{
		{Name: propertyPrefix + "category", Value: r.Category.String()},
		{Name: propertyPrefix + "score", Value: formatFloat(r.Score)},
		{Name: propertyPrefix + "max_score", Value: formatFloat(r.MaxScore)},
		{Name: propertyPrefix + "net_score", Value: formatFloat(r.NetScore())},
		{Name: propertyPrefix + "percentage", Value: formatFloat(r.Percentage())},
		{Name: propertyPrefix + "size_mb", Value: formatFloat(r.Details.SizeMB)},
	}
	if r.Details.Fallback {
		props = append(props, cdx.Property{Name: propertyPrefix + "fallback", Value: "true"})
	}
	if r.Details.Error != "" {
		props = append(props, cdx.Property{Name: propertyPrefix + "error", Value: r.Details.Error})
	}
	for _, th := range scoring.HardwareThresholds {
		if v, ok := r.Details.SizeScore[th.Class]; ok {
			props = append(props, cdx.Property{
				Name:  fmt.Sprintf("%ssize_score:%s", propertyPrefix, th.Class),
				Value: formatFloat(v),
			})
		}
	}

	return cdx.Component{
		BOMRef: "urn:uuid:" + uuid.New().String(),
		Type:   componentType(r.Category),
		Name:   r.Details.Name,
		ExternalReferences: &[]cdx.ExternalReference{
			{URL: r.URL, Type: refType},
		},
		Properties: &props,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

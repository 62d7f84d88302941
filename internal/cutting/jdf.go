package cutting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"time"
)

// The document shape follows JDF 1.3 process-group conventions: a media
// declaration and a cutting-parameter resource, linked from the resource
// link pool, with one CutMark per grid cell.

type Document struct {
	XMLName          xml.Name         `xml:"JDF"`
	Type             string           `xml:"Type,attr"`
	Types            string           `xml:"Types,attr"`
	ID               string           `xml:"ID,attr"`
	Status           string           `xml:"Status,attr"`
	Version          string           `xml:"Version,attr"`
	ResourcePool     ResourcePool     `xml:"ResourcePool"`
	NodeInfo         NodeInfo         `xml:"NodeInfo"`
	ResourceLinkPool ResourceLinkPool `xml:"ResourceLinkPool"`
}

type ResourcePool struct {
	Media         Media         `xml:"Media"`
	CuttingParams CuttingParams `xml:"CuttingParams"`
}

type Media struct {
	ID        string `xml:"ID,attr"`
	Class     string `xml:"Class,attr"`
	Status    string `xml:"Status,attr"`
	MediaType string `xml:"MediaType,attr"`
	Dimension string `xml:"Dimension,attr"`
	Unit      string `xml:"Unit,attr"`
}

type CuttingParams struct {
	ID       string   `xml:"ID,attr"`
	Class    string   `xml:"Class,attr"`
	Status   string   `xml:"Status,attr"`
	CutBlock CutBlock `xml:"CutBlock"`
}

type CutBlock struct {
	BlockName string    `xml:"BlockName,attr"`
	TrimSize  string    `xml:"TrimSize,attr"`
	Unit      string    `xml:"Unit,attr"`
	CutMarks  []CutMark `xml:"CutMark"`
}

type CutMark struct {
	MarkType string  `xml:"MarkType,attr"`
	Center   string  `xml:"Center,attr"`
	Size     string  `xml:"Size,attr"`
	Unit     string  `xml:"Unit,attr"`
	CutPath  CutPath `xml:"CutPath"`
}

type CutPath struct {
	Rectangle Rectangle `xml:"Rectangle"`
}

type Rectangle struct {
	LLx  string `xml:"LLx,attr"`
	LLy  string `xml:"LLy,attr"`
	URx  string `xml:"URx,attr"`
	URy  string `xml:"URy,attr"`
	Unit string `xml:"Unit,attr"`
}

type NodeInfo struct {
	NodeStatus string `xml:"NodeStatus,attr"`
	Start      string `xml:"Start,attr"`
	End        string `xml:"End,attr"`
}

type ResourceLinkPool struct {
	MediaLink         ResourceLink `xml:"MediaLink"`
	CuttingParamsLink ResourceLink `xml:"CuttingParamsLink"`
}

type ResourceLink struct {
	Usage string `xml:"Usage,attr"`
	RRef  string `xml:"rRef,attr"`
}

const timestampLayout = "2006-01-02T15:04:05"

// Document assembles the serializable JDF structure for a guide.
func (g *Generator) Document(guide Guide) Document {
	spec := g.model.Spec
	paperDim := mm(spec.PaperWidthMM) + " " + mm(spec.PaperHeightMM)

	marks := make([]CutMark, 0, len(guide.Rects))
	for _, r := range guide.Rects {
		cx, cy := r.CenterMM()
		w, h := r.SizeMM()
		marks = append(marks, CutMark{
			MarkType: "CutContour",
			Center:   mm(cx) + " " + mm(cy),
			Size:     mm(w) + " " + mm(h),
			Unit:     "mm",
			CutPath: CutPath{
				Rectangle: Rectangle{
					LLx:  mm(r.LLxMM),
					LLy:  mm(r.LLyMM),
					URx:  mm(r.URxMM),
					URy:  mm(r.URyMM),
					Unit: "mm",
				},
			},
		})
	}

	start := g.now()
	return Document{
		Type:    "ProcessGroup",
		Types:   "Cutting",
		ID:      fmt.Sprintf("Sheet_%02d_Cutting", guide.SheetIndex+1),
		Status:  "Waiting",
		Version: "1.3",
		ResourcePool: ResourcePool{
			Media: Media{
				ID:        "Media_001",
				Class:     "Consumable",
				Status:    "Available",
				MediaType: "Paper",
				Dimension: paperDim,
				Unit:      "mm",
			},
			CuttingParams: CuttingParams{
				ID:     "CuttingParams_001",
				Class:  "Parameter",
				Status: "Available",
				CutBlock: CutBlock{
					BlockName: "CardSheet",
					TrimSize:  paperDim,
					Unit:      "mm",
					CutMarks:  marks,
				},
			},
		},
		NodeInfo: NodeInfo{
			NodeStatus: "Waiting",
			Start:      start.Format(timestampLayout),
			End:        start.Add(30 * time.Minute).Format(timestampLayout),
		},
		ResourceLinkPool: ResourceLinkPool{
			MediaLink:         ResourceLink{Usage: "Input", RRef: "Media_001"},
			CuttingParamsLink: ResourceLink{Usage: "Input", RRef: "CuttingParams_001"},
		},
	}
}

// WriteJDF serializes the guide document to path.
func (g *Generator) WriteJDF(guide Guide, path string) error {
	data, err := xml.MarshalIndent(g.Document(guide), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cutting guide: %w", err)
	}

	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write cutting guide: %w", err)
	}
	return nil
}

// mm formats a millimeter value without trailing zeros.
func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

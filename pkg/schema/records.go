package schema

import (
	"time"

	"github.com/agentstation/kolmap/pkg/table"
)

// Entity is the reconciled master record of one KOL.
type Entity struct {
	Name             string    `json:"name" yaml:"name"`
	Area             string    `json:"area,omitempty" yaml:"area,omitempty"`
	Country          string    `json:"country,omitempty" yaml:"country,omitempty"`
	KOLID            int64     `json:"kol_id" yaml:"kol_id"`
	NotionLink       string    `json:"notion_link,omitempty" yaml:"notion_link,omitempty"`
	PDFLink          string    `json:"pdf_link,omitempty" yaml:"pdf_link,omitempty"`
	DeliveredScanner string    `json:"delivered_scanner,omitempty" yaml:"delivered_scanner,omitempty"`
	SerialNo         string    `json:"serial_no,omitempty" yaml:"serial_no,omitempty"`
	Latitude         *float64  `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Hospital         string    `json:"hospital,omitempty" yaml:"hospital,omitempty"`
	Photo            string    `json:"photo,omitempty" yaml:"photo,omitempty"`
	ContractStart    time.Time `json:"contract_start,omitzero" yaml:"contract_start,omitempty"`
	ContractEnd      time.Time `json:"contract_end,omitzero" yaml:"contract_end,omitempty"`
	Times            string    `json:"times,omitempty" yaml:"times,omitempty"`
	AutoPDFLink      string    `json:"auto_pdf_link,omitempty" yaml:"auto_pdf_link,omitempty"`
	AutoPhotoLink    string    `json:"auto_photo_link,omitempty" yaml:"auto_photo_link,omitempty"`
}

// HasLocation reports whether both coordinates are known.
func (e Entity) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// Contract is one row of the contract table.
type Contract struct {
	Name  string    `json:"name" yaml:"name"`
	Start time.Time `json:"contract_start,omitzero" yaml:"contract_start,omitempty"`
	End   time.Time `json:"contract_end,omitzero" yaml:"contract_end,omitempty"`
	Times string    `json:"times,omitempty" yaml:"times,omitempty"`
}

// Activity is one row of the activity log before enrichment. A zero Date
// means the source date was missing or unparsable.
type Activity struct {
	Name     string    `json:"name" yaml:"name"`
	Date     time.Time `json:"date,omitzero" yaml:"date,omitempty"`
	Task     string    `json:"task,omitempty" yaml:"task,omitempty"`
	Activity string    `json:"activity,omitempty" yaml:"activity,omitempty"`
	Status   string    `json:"status,omitempty" yaml:"status,omitempty"`
	Delayed  string    `json:"delayed,omitempty" yaml:"delayed,omitempty"`
	Source   string    `json:"source,omitempty" yaml:"source,omitempty"`
}

// Entities decodes a normalized master table.
func Entities(n *table.Normalized) []Entity {
	out := make([]Entity, 0, n.Len())
	if n == nil {
		return out
	}
	for _, r := range n.Records {
		id, _ := r.Get(table.FieldKOLID).IntValue()
		out = append(out, Entity{
			Name:             text(r, table.FieldName),
			Area:             text(r, table.FieldArea),
			Country:          text(r, table.FieldCountry),
			KOLID:            id,
			NotionLink:       text(r, table.FieldNotionLink),
			PDFLink:          text(r, table.FieldPDFLink),
			DeliveredScanner: text(r, table.FieldDeliveredScanner),
			SerialNo:         text(r, table.FieldSerialNo),
			Latitude:         float(r, table.FieldLatitude),
			Longitude:        float(r, table.FieldLongitude),
			Hospital:         text(r, table.FieldHospital),
			Photo:            text(r, table.FieldPhoto),
		})
	}
	return out
}

// Contracts decodes a normalized contract table.
func Contracts(n *table.Normalized) []Contract {
	out := make([]Contract, 0, n.Len())
	if n == nil {
		return out
	}
	for _, r := range n.Records {
		out = append(out, Contract{
			Name:  text(r, table.FieldName),
			Start: date(r, table.FieldContractStart),
			End:   date(r, table.FieldContractEnd),
			Times: text(r, table.FieldTimes),
		})
	}
	return out
}

// Activities decodes a normalized activity table.
func Activities(n *table.Normalized) []Activity {
	out := make([]Activity, 0, n.Len())
	if n == nil {
		return out
	}
	for _, r := range n.Records {
		out = append(out, Activity{
			Name:     text(r, table.FieldName),
			Date:     date(r, table.FieldDate),
			Task:     text(r, table.FieldTask),
			Activity: text(r, table.FieldActivity),
			Status:   text(r, table.FieldStatus),
			Delayed:  text(r, table.FieldDelayed),
			Source:   text(r, table.FieldSource),
		})
	}
	return out
}

// IndexEntities keys entities by name. The first occurrence of a name wins;
// later duplicates and unnamed rows are returned separately.
func IndexEntities(entities []Entity) (unique []Entity, index map[string]Entity, duplicates []string) {
	index = make(map[string]Entity, len(entities))
	unique = make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e.Name == "" {
			continue
		}
		if _, seen := index[e.Name]; seen {
			duplicates = append(duplicates, e.Name)
			continue
		}
		index[e.Name] = e
		unique = append(unique, e)
	}
	return unique, index, duplicates
}

func text(r table.Record, f table.Field) string {
	return r.Get(f).String()
}

func float(r table.Record, f table.Field) *float64 {
	if v, ok := r.Get(f).FloatValue(); ok {
		return &v
	}
	return nil
}

func date(r table.Record, f table.Field) time.Time {
	t, _ := r.Get(f).Time()
	return t
}

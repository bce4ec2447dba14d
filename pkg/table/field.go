package table

// Field is a canonical column name.
type Field string

// Entity (master) fields.
const (
	FieldName             Field = "Name"
	FieldArea             Field = "Area"
	FieldCountry          Field = "Country"
	FieldKOLID            Field = "KOL_ID"
	FieldNotionLink       Field = "Notion_Link"
	FieldPDFLink          Field = "PDF_Link"
	FieldDeliveredScanner Field = "Delivered_Scanner"
	FieldSerialNo         Field = "Serial_No"
	FieldLatitude         Field = "Latitude"
	FieldLongitude        Field = "Longitude"
	FieldHospital         Field = "Hospital"
	FieldPhoto            Field = "Photo"
)

// Contract fields.
const (
	FieldContractStart Field = "Contract_Start"
	FieldContractEnd   Field = "Contract_End"
	FieldTimes         Field = "Times"
)

// Activity fields.
const (
	FieldDate     Field = "Date"
	FieldTask     Field = "Task"
	FieldActivity Field = "Activity"
	FieldStatus   Field = "Status"
	FieldDelayed  Field = "Delayed"
	FieldSource   Field = "Source"
)

// Derived fields added by the pipeline.
const (
	FieldStatusNorm    Field = "Status_norm"
	FieldDelayedFlag   Field = "Delayed_flag"
	FieldWarningFlag   Field = "Warning_flag"
	FieldAutoPDFLink   Field = "Auto_PDF_Link"
	FieldAutoPhotoLink Field = "Auto_Photo_Link"
)

// Fields returns the canonical fields of a table kind in output order.
func Fields(kind Kind) []Field {
	switch kind {
	case KindMaster:
		return []Field{
			FieldName, FieldArea, FieldCountry, FieldKOLID, FieldNotionLink,
			FieldPDFLink, FieldDeliveredScanner, FieldSerialNo, FieldLatitude,
			FieldLongitude, FieldHospital, FieldPhoto,
		}
	case KindContract:
		return []Field{FieldName, FieldContractStart, FieldContractEnd, FieldTimes}
	case KindActivity:
		return []Field{FieldName, FieldDate, FieldTask, FieldActivity, FieldStatus, FieldDelayed, FieldSource}
	}
	return nil
}

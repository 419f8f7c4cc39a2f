package dto

// ReportItemDTO is one row of the attendance report (event joined with the
// owning user's profile at export time).
type ReportItemDTO struct {
	Fecha      string `json:"fecha"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Email      string `json:"email"`
	CarnetRfid string `json:"carnetRfid"`
	Tipo       string `json:"tipo"`
	Estado     string `json:"estado"`
}

package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Window recorta [offset, offset+limit) sobre n elementos.
func (p PageRequest) Window(n int) (from, to int) {
	from = p.Offset
	if from > n {
		from = n
	}
	to = from + p.Limit
	if p.Limit <= 0 || to > n {
		to = n
	}
	return from, to
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// PeriodQuery selección de período común a listados y reportes.
// Since/Until en formato YYYY-MM-DD; Period es today, last-7-days, last-30-days o all-time.
type PeriodQuery struct {
	Period string `query:"period" validate:"omitempty,oneof=today last-7-days last-30-days all-time"`
	Since  string `query:"since" validate:"omitempty,datetime=2006-01-02"`
	Until  string `query:"until" validate:"omitempty,datetime=2006-01-02"`
	Area   string `query:"area"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

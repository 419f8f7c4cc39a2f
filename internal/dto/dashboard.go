package dto

// Role-scoped dashboard statistics. RoleStatsDTO is a tagged union:
// exactly one variant is populated, selected by Rol. An empty Rol with no
// variant set means the caller has no assigned role yet.

type AttendanceTotalsDTO struct {
	Total    int `json:"total"`
	Entradas int `json:"entradas"`
	Salidas  int `json:"salidas"`
}

type UserCountsDTO struct {
	Total        int `json:"total"`
	Aprendices   int `json:"aprendices"`
	Instructores int `json:"instructores"`
}

type EquipmentStatsDTO struct {
	Total     int            `json:"total"`
	Activos   int            `json:"activos"`
	Inactivos int            `json:"inactivos"`
	PorTipo   map[string]int `json:"porTipo"`
	PorMarca  map[string]int `json:"porMarca"`
}

type AdminStatsDTO struct {
	Usuarios    UserCountsDTO                  `json:"usuarios"`
	Asistencias AttendanceTotalsDTO            `json:"asistencias"`
	PorUsuario  map[string]AttendanceTotalsDTO `json:"porUsuario"`
	Equipos     EquipmentStatsDTO              `json:"equipos"`
	Ultimas     []AsistenciaDTO                `json:"ultimasAsistencias"`
}

type InstructorStatsDTO struct {
	AsistenciasHoy      int               `json:"asistenciasHoy"`
	AprendicesPresentes int               `json:"aprendicesPresentes"`
	TotalAprendices     int               `json:"totalAprendices"`
	Equipos             EquipmentStatsDTO `json:"equipos"`
}

type LearnerStatsDTO struct {
	Total      int         `json:"total"`
	Mes        int         `json:"mes"`
	Semana     int         `json:"semana"`
	MisEquipos []EquipoDTO `json:"misEquipos"`
}

type RoleStatsDTO struct {
	Rol        string              `json:"rol"`
	Admin      *AdminStatsDTO      `json:"admin,omitempty"`
	Instructor *InstructorStatsDTO `json:"instructor,omitempty"`
	Aprendiz   *LearnerStatsDTO    `json:"aprendiz,omitempty"`
}

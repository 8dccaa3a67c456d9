package dto

import "github.com/BruksfildServices01/skin-clinic/internal/models"

type ProgressDTO struct {
	Target             int    `json:"target"`
	ProgressPercentage int    `json:"progress_percentage"`
	RemainingSessions  int    `json:"remaining_sessions"`
	State              string `json:"state"`
}

type ClientPackageDTO struct {
	models.ClientPackage
	ProgressDTO
}

type ServiceSessionDTO struct {
	models.ClientServiceSession
	ProgressDTO
}

type ClientProfileDTO struct {
	Client             models.Client       `json:"client"`
	Packages           []ClientPackageDTO  `json:"packages"`
	ServiceSessions    []ServiceSessionDTO `json:"service_sessions"`
	AssignablePackages []models.Package    `json:"assignable_packages"`
	ActiveServices     []models.Service    `json:"active_services"`
}

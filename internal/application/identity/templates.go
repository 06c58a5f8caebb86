package identity

import (
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
)

var (
	patientTemplate = &entity.Identity{
		ID:     "u1",
		Name:   "Alex Johnson",
		Email:  "alex@example.com",
		Role:   entity.RoleUser,
		Avatar: "https://picsum.photos/200",
		Profile: &entity.HealthProfile{
			Known:     true,
			Age:       24,
			HeightCM:  175,
			WeightKG:  70,
			Gender:    entity.GenderMale,
			BloodType: "O+",
			Allergies: []string{"Peanuts"},
		},
	}

	doctorTemplate = &entity.Identity{
		ID:     "d1",
		Name:   "Dr. Sarah Smith",
		Email:  "sarah@hospital.com",
		Role:   entity.RoleDoctor,
		Avatar: "https://picsum.photos/201",
	}

	adminTemplate = &entity.Identity{
		ID:     "a1",
		Name:   "System Admin",
		Email:  "admin@sys.com",
		Role:   entity.RoleAdmin,
		Avatar: "https://picsum.photos/202",
	}
)

// templateFor returns a copy of the demo identity for role.
func templateFor(role entity.Role) (*entity.Identity, error) {
	switch role {
	case entity.RoleUser:
		return patientTemplate.Clone(), nil
	case entity.RoleDoctor:
		return doctorTemplate.Clone(), nil
	case entity.RoleAdmin:
		return adminTemplate.Clone(), nil
	default:
		return nil, entity.ErrUnknownRole
	}
}

// Templates returns copies of all demo identities, used by the seeder.
func Templates() []*entity.Identity {
	out := make([]*entity.Identity, 0, 3)
	for _, r := range entity.Roles() {
		t, _ := templateFor(r)
		out = append(out, t)
	}
	return out
}

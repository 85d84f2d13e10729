package api

import (
	"context"
	"time"

	"github.com/gardenhq/gardenapi/internal/core/domain"
	"github.com/gardenhq/gardenapi/internal/shell/store"
)

// =============================================================================
// View Projections
// =============================================================================
//
// Each entity is serialized through an explicit view struct rather than
// tagging the domain types, so the password hash can never leak and the
// nesting depth is fixed per calling context. A garden embedded inside
// a comment omits its own comments and placements to stop the recursion.

const viewDateFormat = "2006-01-02"

type userEmbed struct {
	Username string `json:"user_name"`
	Email    string `json:"email"`
}

func newUserEmbed(u *domain.User) userEmbed {
	return userEmbed{Username: u.Username, Email: u.Email}
}

type userRegisterView struct {
	ID       int    `json:"id"`
	Username string `json:"user_name"`
	Email    string `json:"email"`
}

type loginView struct {
	Username string `json:"user_name"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type userView struct {
	ID       int    `json:"id"`
	Username string `json:"user_name"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func newUserView(u *domain.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}

type userDetailView struct {
	ID       int                `json:"id"`
	Username string             `json:"user_name"`
	Email    string             `json:"email"`
	IsAdmin  bool               `json:"is_admin"`
	Gardens  []gardenOfUserView `json:"gardens"`
}

// gardenOfUserView is a garden embedded inside its owner, so the
// redundant owner embed is omitted while the children are kept.
type gardenOfUserView struct {
	ID           int                   `json:"id"`
	Name         string                `json:"garden_name"`
	CreationDate string                `json:"creation_date"`
	Description  string                `json:"description"`
	GardenPlants []gardenPlantItemView `json:"garden_plants"`
	Comments     []commentItemView     `json:"comments"`
}

type gardenView struct {
	ID           int                   `json:"id"`
	Name         string                `json:"garden_name"`
	CreationDate string                `json:"creation_date"`
	Description  string                `json:"description"`
	User         userEmbed             `json:"user"`
	GardenPlants []gardenPlantItemView `json:"garden_plants"`
	Comments     []commentItemView     `json:"comments"`
}

type gardenUpdateView struct {
	ID           int       `json:"id"`
	Name         string    `json:"garden_name"`
	CreationDate string    `json:"creation_date"`
	Description  string    `json:"description"`
	User         userEmbed `json:"user"`
}

type gardenEmbed struct {
	ID           int       `json:"id"`
	Name         string    `json:"garden_name"`
	CreationDate string    `json:"creation_date"`
	Description  string    `json:"description"`
	User         userEmbed `json:"user"`
}

type plantEmbed struct {
	ID   int    `json:"id"`
	Name string `json:"plant_name"`
}

type plantView struct {
	ID           int                    `json:"id"`
	Name         string                 `json:"plant_name"`
	Genus        string                 `json:"genus"`
	Watering     domain.Watering        `json:"watering"`
	GrowthRate   domain.GrowthRate      `json:"growth_rate"`
	GardenPlants []placementOfPlantView `json:"garden_plants"`
}

type plantUpdateView struct {
	ID         int               `json:"id"`
	Name       string            `json:"plant_name"`
	Genus      string            `json:"genus"`
	Watering   domain.Watering   `json:"watering"`
	GrowthRate domain.GrowthRate `json:"growth_rate"`
}

func newPlantUpdateView(p *domain.Plant) plantUpdateView {
	return plantUpdateView{ID: p.ID, Name: p.Name, Genus: p.Genus, Watering: p.Watering, GrowthRate: p.GrowthRate}
}

// placementOfPlantView is a placement embedded inside its plant, so the
// plant itself is omitted and the garden is reduced to a summary.
type placementOfPlantView struct {
	ID       int             `json:"id"`
	Color    domain.Color    `json:"color"`
	Position domain.Position `json:"position"`
	Size     domain.Size     `json:"size"`
	Garden   gardenOfGPView  `json:"garden"`
}

type gardenOfGPView struct {
	ID   int       `json:"id"`
	Name string    `json:"garden_name"`
	User userEmbed `json:"user"`
}

type gardenPlantView struct {
	ID       int             `json:"id"`
	Plant    plantEmbed      `json:"plant"`
	Color    domain.Color    `json:"color"`
	Position domain.Position `json:"position"`
	Size     domain.Size     `json:"size"`
	Garden   gardenOfGPView  `json:"garden"`
}

type gardenPlantItemView struct {
	ID       int             `json:"id"`
	Plant    plantEmbed      `json:"plant"`
	Color    domain.Color    `json:"color"`
	Position domain.Position `json:"position"`
	Size     domain.Size     `json:"size"`
}

type commentView struct {
	ID          int         `json:"id"`
	CommentDate string      `json:"comment_date"`
	Message     string      `json:"message"`
	Garden      gardenEmbed `json:"garden"`
	User        userEmbed   `json:"user"`
}

type commentItemView struct {
	ID          int       `json:"id"`
	CommentDate string    `json:"comment_date"`
	Message     string    `json:"message"`
	User        userEmbed `json:"user"`
}

func formatViewDate(t time.Time) string {
	return t.Format(viewDateFormat)
}

// =============================================================================
// View Assembly
// =============================================================================

func buildGardenEmbed(g domain.Garden, owner *domain.User) gardenEmbed {
	return gardenEmbed{
		ID:           g.ID,
		Name:         g.Name,
		CreationDate: formatViewDate(g.CreationDate),
		Description:  g.Description,
		User:         newUserEmbed(owner),
	}
}

func buildGardenUpdateView(g domain.Garden, owner *domain.User) gardenUpdateView {
	return gardenUpdateView{
		ID:           g.ID,
		Name:         g.Name,
		CreationDate: formatViewDate(g.CreationDate),
		Description:  g.Description,
		User:         newUserEmbed(owner),
	}
}

// buildGardenView assembles the full garden detail view with its owner,
// placements, and comments.
func buildGardenView(ctx context.Context, s store.Store, g domain.Garden) (gardenView, error) {
	owner, err := s.GetUser(ctx, g.UserID)
	if err != nil {
		return gardenView{}, err
	}

	placements, err := s.ListGardenPlants(ctx, g.ID)
	if err != nil {
		return gardenView{}, err
	}
	placementViews := make([]gardenPlantItemView, 0, len(placements))
	for _, gp := range placements {
		item, err := buildGardenPlantItemView(ctx, s, gp)
		if err != nil {
			return gardenView{}, err
		}
		placementViews = append(placementViews, item)
	}

	comments, err := s.ListComments(ctx, g.ID)
	if err != nil {
		return gardenView{}, err
	}
	commentViews := make([]commentItemView, 0, len(comments))
	for _, c := range comments {
		item, err := buildCommentItemView(ctx, s, c)
		if err != nil {
			return gardenView{}, err
		}
		commentViews = append(commentViews, item)
	}

	return gardenView{
		ID:           g.ID,
		Name:         g.Name,
		CreationDate: formatViewDate(g.CreationDate),
		Description:  g.Description,
		User:         newUserEmbed(owner),
		GardenPlants: placementViews,
		Comments:     commentViews,
	}, nil
}

func buildPlantView(ctx context.Context, s store.Store, p domain.Plant) (plantView, error) {
	placements, err := s.ListGardenPlantsByPlant(ctx, p.ID)
	if err != nil {
		return plantView{}, err
	}

	placementViews := make([]placementOfPlantView, 0, len(placements))
	for _, gp := range placements {
		garden, err := s.GetGarden(ctx, gp.GardenID)
		if err != nil {
			return plantView{}, err
		}
		owner, err := s.GetUser(ctx, garden.UserID)
		if err != nil {
			return plantView{}, err
		}
		placementViews = append(placementViews, placementOfPlantView{
			ID:       gp.ID,
			Color:    gp.Color,
			Position: gp.Position,
			Size:     gp.Size,
			Garden: gardenOfGPView{
				ID:   garden.ID,
				Name: garden.Name,
				User: newUserEmbed(owner),
			},
		})
	}

	return plantView{
		ID:           p.ID,
		Name:         p.Name,
		Genus:        p.Genus,
		Watering:     p.Watering,
		GrowthRate:   p.GrowthRate,
		GardenPlants: placementViews,
	}, nil
}

func buildGardenPlantView(ctx context.Context, s store.Store, gp domain.GardenPlant) (gardenPlantView, error) {
	plant, err := s.GetPlant(ctx, gp.PlantID)
	if err != nil {
		return gardenPlantView{}, err
	}
	garden, err := s.GetGarden(ctx, gp.GardenID)
	if err != nil {
		return gardenPlantView{}, err
	}
	owner, err := s.GetUser(ctx, garden.UserID)
	if err != nil {
		return gardenPlantView{}, err
	}

	return gardenPlantView{
		ID:       gp.ID,
		Plant:    plantEmbed{ID: plant.ID, Name: plant.Name},
		Color:    gp.Color,
		Position: gp.Position,
		Size:     gp.Size,
		Garden: gardenOfGPView{
			ID:   garden.ID,
			Name: garden.Name,
			User: newUserEmbed(owner),
		},
	}, nil
}

func buildGardenPlantItemView(ctx context.Context, s store.Store, gp domain.GardenPlant) (gardenPlantItemView, error) {
	plant, err := s.GetPlant(ctx, gp.PlantID)
	if err != nil {
		return gardenPlantItemView{}, err
	}
	return gardenPlantItemView{
		ID:       gp.ID,
		Plant:    plantEmbed{ID: plant.ID, Name: plant.Name},
		Color:    gp.Color,
		Position: gp.Position,
		Size:     gp.Size,
	}, nil
}

func buildCommentView(ctx context.Context, s store.Store, c domain.Comment) (commentView, error) {
	author, err := s.GetUser(ctx, c.UserID)
	if err != nil {
		return commentView{}, err
	}
	garden, err := s.GetGarden(ctx, c.GardenID)
	if err != nil {
		return commentView{}, err
	}
	owner, err := s.GetUser(ctx, garden.UserID)
	if err != nil {
		return commentView{}, err
	}

	return commentView{
		ID:          c.ID,
		CommentDate: formatViewDate(c.CommentDate),
		Message:     c.Message,
		Garden:      buildGardenEmbed(*garden, owner),
		User:        newUserEmbed(author),
	}, nil
}

func buildCommentItemView(ctx context.Context, s store.Store, c domain.Comment) (commentItemView, error) {
	author, err := s.GetUser(ctx, c.UserID)
	if err != nil {
		return commentItemView{}, err
	}
	return commentItemView{
		ID:          c.ID,
		CommentDate: formatViewDate(c.CommentDate),
		Message:     c.Message,
		User:        newUserEmbed(author),
	}, nil
}

func buildGardenOfUserView(ctx context.Context, s store.Store, g domain.Garden) (gardenOfUserView, error) {
	placements, err := s.ListGardenPlants(ctx, g.ID)
	if err != nil {
		return gardenOfUserView{}, err
	}
	placementViews := make([]gardenPlantItemView, 0, len(placements))
	for _, gp := range placements {
		item, err := buildGardenPlantItemView(ctx, s, gp)
		if err != nil {
			return gardenOfUserView{}, err
		}
		placementViews = append(placementViews, item)
	}

	comments, err := s.ListComments(ctx, g.ID)
	if err != nil {
		return gardenOfUserView{}, err
	}
	commentViews := make([]commentItemView, 0, len(comments))
	for _, c := range comments {
		item, err := buildCommentItemView(ctx, s, c)
		if err != nil {
			return gardenOfUserView{}, err
		}
		commentViews = append(commentViews, item)
	}

	return gardenOfUserView{
		ID:           g.ID,
		Name:         g.Name,
		CreationDate: formatViewDate(g.CreationDate),
		Description:  g.Description,
		GardenPlants: placementViews,
		Comments:     commentViews,
	}, nil
}

func buildUserDetailView(ctx context.Context, s store.Store, u *domain.User) (userDetailView, error) {
	gardens, err := s.ListGardensByUser(ctx, u.ID)
	if err != nil {
		return userDetailView{}, err
	}
	gardenViews := make([]gardenOfUserView, 0, len(gardens))
	for _, g := range gardens {
		gv, err := buildGardenOfUserView(ctx, s, g)
		if err != nil {
			return userDetailView{}, err
		}
		gardenViews = append(gardenViews, gv)
	}
	return userDetailView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		Gardens:  gardenViews,
	}, nil
}

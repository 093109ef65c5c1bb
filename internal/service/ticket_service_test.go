package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/facility-ticketing/internal/domain"
	"github.com/spec-kit/facility-ticketing/internal/registry"
	apperrors "github.com/spec-kit/facility-ticketing/pkg/util"
)

// fakeTicketRepo is an in-memory TicketRepository for service tests.
type fakeTicketRepo struct {
	nextID    int64
	tickets   map[int64]*domain.Ticket
	order     []int64
	typeNames map[int64]string
	usernames map[int64]string
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: map[int64]*domain.Ticket{},
		typeNames: map[int64]string{
			1: "Plumbing issue",
			2: "Cleaning request",
			3: "Other",
		},
		usernames: map[int64]string{
			1: "admin",
			2: "facility",
			3: "cleaner",
			4: "user",
			5: "user2",
		},
	}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = r.nextID
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	r.order = append(r.order, ticket.ID)
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = ticket.Status
	stored.Description = ticket.Description
	stored.Priority = ticket.Priority
	stored.Floor = ticket.Floor
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Second)
	ticket.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	stored, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeTicketRepo) GetDetailByID(ctx context.Context, id int64) (*domain.TicketDetail, error) {
	ticket, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.TicketDetail{
		Ticket:    *ticket,
		TypeName:  r.typeNames[ticket.TypeID],
		CreatedBy: r.usernames[ticket.CreatedByUserID],
	}, nil
}

func (r *fakeTicketRepo) ListAllDetail(ctx context.Context) ([]domain.TicketDetail, error) {
	result := make([]domain.TicketDetail, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		detail, err := r.GetDetailByID(ctx, r.order[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := r.tickets[id]; !ok {
		return 0, nil
	}
	delete(r.tickets, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

var (
	adminActor    = domain.Actor{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	facilityActor = domain.Actor{ID: 2, Username: "facility", Role: domain.RoleFacility}
	cleanerActor  = domain.Actor{ID: 3, Username: "cleaner", Role: domain.RoleCleaner}
	userActor     = domain.Actor{ID: 4, Username: "user", Role: domain.RoleUser}
	user2Actor    = domain.Actor{ID: 5, Username: "user2", Role: domain.RoleUser}
)

func newTestService() (*TicketService, *fakeTicketRepo) {
	repo := newFakeTicketRepo()
	types := registry.NewTicketTypeRegistry([]domain.TicketType{
		{ID: 1, Name: "Plumbing issue", DefaultAssigneeRole: domain.RoleFacility},
		{ID: 2, Name: "Cleaning request", DefaultAssigneeRole: domain.RoleCleaner},
		{ID: 3, Name: "Other", DefaultAssigneeRole: domain.RoleAdmin},
	})
	svc := NewTicketService(TicketDependencies{TicketRepo: repo, TypeRegistry: types})
	return svc, repo
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func errCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error")
	}
	return apperrors.ToDomainError(err).Code
}

func TestCreateTicketPlumbingLeak(t *testing.T) {
	svc, _ := newTestService()

	detail, err := svc.CreateTicket(context.Background(), userActor, TicketCreateInput{
		Title:       "Leak",
		Description: "Pipe leaking",
		TypeID:      1,
		Floor:       intPtr(2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Status != domain.TicketStatusOpen {
		t.Fatalf("expected OPEN, got %s", detail.Status)
	}
	if detail.Priority != domain.TicketPriorityMedium {
		t.Fatalf("expected MEDIUM default, got %s", detail.Priority)
	}
	if detail.AssignedRole != domain.RoleFacility {
		t.Fatalf("expected facility assignment, got %s", detail.AssignedRole)
	}
	if detail.TypeName != "Plumbing issue" || detail.CreatedBy != "user" {
		t.Fatalf("unexpected decoration %q / %q", detail.TypeName, detail.CreatedBy)
	}
	if !detail.CreatedAt.Equal(detail.UpdatedAt) {
		t.Fatalf("created_at and updated_at should match at creation")
	}
}

func TestCreateTicketValidationOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Everything wrong at once: missing fields win.
	_, err := svc.CreateTicket(ctx, userActor, TicketCreateInput{Priority: "nope", Floor: intPtr(99)})
	if code := errCode(t, err); code != "MISSING_REQUIRED_FIELD" {
		t.Fatalf("expected MISSING_REQUIRED_FIELD, got %s", code)
	}

	// Fields present, floor and priority and type wrong: floor wins.
	_, err = svc.CreateTicket(ctx, userActor, TicketCreateInput{
		Title: "a", Description: "b", TypeID: 99, Priority: "nope", Floor: intPtr(99),
	})
	if code := errCode(t, err); code != "INVALID_FLOOR" {
		t.Fatalf("expected INVALID_FLOOR, got %s", code)
	}

	// Floor fine, priority and type wrong: priority wins.
	_, err = svc.CreateTicket(ctx, userActor, TicketCreateInput{
		Title: "a", Description: "b", TypeID: 99, Priority: "nope", Floor: intPtr(1),
	})
	if code := errCode(t, err); code != "INVALID_PRIORITY" {
		t.Fatalf("expected INVALID_PRIORITY, got %s", code)
	}

	// Only the type wrong.
	_, err = svc.CreateTicket(ctx, userActor, TicketCreateInput{
		Title: "a", Description: "b", TypeID: 99, Floor: intPtr(1),
	})
	if code := errCode(t, err); code != "INVALID_TICKET_TYPE" {
		t.Fatalf("expected INVALID_TICKET_TYPE, got %s", code)
	}
}

func TestCreateTicketWhitespaceOnlyFieldsAreMissing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateTicket(ctx, userActor, TicketCreateInput{
		Title: "   ", Description: "b", TypeID: 1, Floor: intPtr(1),
	})
	if code := errCode(t, err); code != "MISSING_REQUIRED_FIELD" {
		t.Fatalf("whitespace title: expected MISSING_REQUIRED_FIELD, got %s", code)
	}

	_, err = svc.CreateTicket(ctx, userActor, TicketCreateInput{
		Title: "a", Description: "\t\n", TypeID: 1, Floor: intPtr(1),
	})
	if code := errCode(t, err); code != "MISSING_REQUIRED_FIELD" {
		t.Fatalf("whitespace description: expected MISSING_REQUIRED_FIELD, got %s", code)
	}
}

func TestCreateTicketFloorBoundaries(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, floor := range []int{-3, 6} {
		if _, err := svc.CreateTicket(ctx, userActor, TicketCreateInput{
			Title: "t", Description: "d", TypeID: 1, Floor: intPtr(floor),
		}); err != nil {
			t.Fatalf("floor %d should be accepted: %v", floor, err)
		}
	}
	for _, floor := range []int{-4, 7} {
		_, err := svc.CreateTicket(ctx, userActor, TicketCreateInput{
			Title: "t", Description: "d", TypeID: 1, Floor: intPtr(floor),
		})
		if code := errCode(t, err); code != "INVALID_FLOOR" {
			t.Fatalf("floor %d: expected INVALID_FLOOR, got %s", floor, code)
		}
	}

	// Missing floor is indistinguishable from an out-of-range one.
	_, err := svc.CreateTicket(ctx, userActor, TicketCreateInput{Title: "t", Description: "d", TypeID: 1})
	if code := errCode(t, err); code != "INVALID_FLOOR" {
		t.Fatalf("missing floor: expected INVALID_FLOOR, got %s", code)
	}
}

func TestCreateTicketPriorityCaseNormalized(t *testing.T) {
	svc, _ := newTestService()

	detail, err := svc.CreateTicket(context.Background(), userActor, TicketCreateInput{
		Title: "t", Description: "d", TypeID: 2, Priority: "urgent", Floor: intPtr(0),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Priority != domain.TicketPriorityUrgent {
		t.Fatalf("expected URGENT, got %s", detail.Priority)
	}
	if detail.AssignedRole != domain.RoleCleaner {
		t.Fatalf("expected cleaner assignment, got %s", detail.AssignedRole)
	}
}

func seedTickets(t *testing.T, svc *TicketService) {
	t.Helper()
	ctx := context.Background()
	cases := []struct {
		actor  domain.Actor
		typeID int64
	}{
		{userActor, 1},   // facility-assigned, owned by user
		{user2Actor, 2},  // cleaner-assigned, owned by user2
		{userActor, 3},   // admin-assigned, owned by user
		{cleanerActor, 1}, // facility-assigned, created by a cleaner
	}
	for _, tc := range cases {
		if _, err := svc.CreateTicket(ctx, tc.actor, TicketCreateInput{
			Title: "t", Description: "d", TypeID: tc.typeID, Floor: intPtr(1),
		}); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}
}

func TestListTicketsAdminSeesAll(t *testing.T) {
	svc, _ := newTestService()
	seedTickets(t, svc)

	visible, err := svc.ListTickets(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible) != 4 {
		t.Fatalf("expected all 4 tickets, got %d", len(visible))
	}
	for i := 1; i < len(visible); i++ {
		if visible[i-1].ID < visible[i].ID {
			t.Fatalf("expected id-descending order, got %d before %d", visible[i-1].ID, visible[i].ID)
		}
	}
}

func TestListTicketsUserSeesOnlyOwn(t *testing.T) {
	svc, _ := newTestService()
	seedTickets(t, svc)

	visible, err := svc.ListTickets(context.Background(), userActor)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 owned tickets, got %d", len(visible))
	}
	for _, detail := range visible {
		if detail.CreatedByUserID != userActor.ID {
			t.Fatalf("user sees foreign ticket %d", detail.ID)
		}
	}

	// user2's listing must not contain user's tickets.
	visible2, err := svc.ListTickets(context.Background(), user2Actor)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible2) != 1 || visible2[0].CreatedByUserID != user2Actor.ID {
		t.Fatalf("expected exactly user2's ticket, got %+v", visible2)
	}
}

func TestListTicketsResponderSeesAssignedRole(t *testing.T) {
	svc, _ := newTestService()
	seedTickets(t, svc)

	visible, err := svc.ListTickets(context.Background(), facilityActor)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 facility tickets, got %d", len(visible))
	}
	for _, detail := range visible {
		if detail.AssignedRole != domain.RoleFacility {
			t.Fatalf("facility sees ticket assigned to %s", detail.AssignedRole)
		}
	}
}

func TestUpdateTicketEmptyPayload(t *testing.T) {
	svc, repo := newTestService()
	seedTickets(t, svc)

	before, _ := repo.GetByID(context.Background(), 1)

	_, err := svc.UpdateTicket(context.Background(), adminActor, 1, TicketUpdateInput{})
	if code := errCode(t, err); code != "NO_FIELDS_TO_UPDATE" {
		t.Fatalf("expected NO_FIELDS_TO_UPDATE, got %s", code)
	}

	after, _ := repo.GetByID(context.Background(), 1)
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("rejected update must not touch updated_at")
	}
}

func TestUpdateTicketEmptyStringsCountAsAbsent(t *testing.T) {
	svc, _ := newTestService()
	seedTickets(t, svc)

	_, err := svc.UpdateTicket(context.Background(), adminActor, 1, TicketUpdateInput{
		Status:   strPtr(""),
		Priority: strPtr(""),
	})
	if code := errCode(t, err); code != "NO_FIELDS_TO_UPDATE" {
		t.Fatalf("expected NO_FIELDS_TO_UPDATE, got %s", code)
	}
}

func TestUpdateTicketSameValueStillBumpsUpdatedAt(t *testing.T) {
	svc, repo := newTestService()
	seedTickets(t, svc)

	before, _ := repo.GetByID(context.Background(), 1)

	detail, err := svc.UpdateTicket(context.Background(), adminActor, 1, TicketUpdateInput{
		Status: strPtr(string(before.Status)),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !detail.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updated_at should advance on a no-change edit")
	}
	if detail.Status != before.Status {
		t.Fatalf("status should be unchanged")
	}
}

func TestUpdateTicketFieldValidation(t *testing.T) {
	svc, _ := newTestService()
	seedTickets(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateTicket(ctx, adminActor, 1, TicketUpdateInput{Status: strPtr("SOLVED")})
	if code := errCode(t, err); code != "INVALID_STATUS" {
		t.Fatalf("expected INVALID_STATUS, got %s", code)
	}

	_, err = svc.UpdateTicket(ctx, adminActor, 1, TicketUpdateInput{Priority: strPtr("EXTREME")})
	if code := errCode(t, err); code != "INVALID_PRIORITY" {
		t.Fatalf("expected INVALID_PRIORITY, got %s", code)
	}

	_, err = svc.UpdateTicket(ctx, adminActor, 1, TicketUpdateInput{Floor: intPtr(7)})
	if code := errCode(t, err); code != "INVALID_FLOOR" {
		t.Fatalf("expected INVALID_FLOOR, got %s", code)
	}

	// Case-normalization accepts lowercase input.
	detail, err := svc.UpdateTicket(ctx, adminActor, 1, TicketUpdateInput{Status: strPtr("in_progress")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if detail.Status != domain.TicketStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", detail.Status)
	}
}

func TestUpdateTicketPermissions(t *testing.T) {
	svc, _ := newTestService()
	seedTickets(t, svc)
	ctx := context.Background()

	// Ticket 2 is cleaner-assigned and owned by user2.
	_, err := svc.UpdateTicket(ctx, facilityActor, 2, TicketUpdateInput{Status: strPtr("CLOSED")})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN for facility, got %s", code)
	}
	_, err = svc.UpdateTicket(ctx, userActor, 2, TicketUpdateInput{Status: strPtr("CLOSED")})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN for non-owner, got %s", code)
	}

	if _, err := svc.UpdateTicket(ctx, cleanerActor, 2, TicketUpdateInput{Status: strPtr("CLOSED")}); err != nil {
		t.Fatalf("cleaner should edit cleaner-assigned ticket: %v", err)
	}
	if _, err := svc.UpdateTicket(ctx, user2Actor, 2, TicketUpdateInput{Floor: intPtr(3)}); err != nil {
		t.Fatalf("owner should edit own ticket: %v", err)
	}

	_, err = svc.UpdateTicket(ctx, adminActor, 999, TicketUpdateInput{Status: strPtr("CLOSED")})
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestUpdateTicketImmutableFields(t *testing.T) {
	svc, repo := newTestService()
	seedTickets(t, svc)

	before, _ := repo.GetByID(context.Background(), 1)
	if _, err := svc.UpdateTicket(context.Background(), adminActor, 1, TicketUpdateInput{
		Status:      strPtr("CLOSED"),
		Description: strPtr("done"),
		Priority:    strPtr("LOW"),
		Floor:       intPtr(0),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	after, _ := repo.GetByID(context.Background(), 1)

	if after.AssignedRole != before.AssignedRole {
		t.Fatalf("assigned_role must never change")
	}
	if after.CreatedByUserID != before.CreatedByUserID {
		t.Fatalf("creator must never change")
	}
	if after.TypeID != before.TypeID {
		t.Fatalf("type must never change")
	}
	if after.Title != before.Title {
		t.Fatalf("title is not editable")
	}
}

func TestDeleteTicketAdminOnly(t *testing.T) {
	svc, repo := newTestService()
	seedTickets(t, svc)
	ctx := context.Background()

	for _, actor := range []domain.Actor{facilityActor, cleanerActor, userActor} {
		err := svc.DeleteTicket(ctx, actor, 1)
		if code := errCode(t, err); code != "FORBIDDEN" {
			t.Fatalf("role %s: expected FORBIDDEN, got %s", actor.Role, code)
		}
	}
	if _, err := repo.GetByID(ctx, 1); err != nil {
		t.Fatalf("ticket should survive forbidden deletes")
	}

	if err := svc.DeleteTicket(ctx, adminActor, 1); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, 1); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("ticket should be gone")
	}
}

func TestDeleteTicketAbsentIDStillSucceeds(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.DeleteTicket(context.Background(), adminActor, 12345); err != nil {
		t.Fatalf("delete of absent id should succeed, got %v", err)
	}
}

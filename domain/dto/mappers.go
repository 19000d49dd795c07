package dto

import (
	"taskboard-api/domain/models"
)

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		TeamID:      u.TeamID,
	}
}

func ToTeamResponse(t *models.Team) TeamResponse {
	return TeamResponse{
		ID:       t.ID,
		Name:     t.Name,
		Slug:     t.Slug,
		IsActive: t.IsActive,
	}
}

func ToColumnResponse(c *models.BoardColumn) ColumnResponse {
	return ColumnResponse{
		ID:       c.ID,
		TeamID:   c.TeamID,
		Name:     c.Name,
		Position: c.Position,
		Stage:    string(c.Stage),
	}
}

func ToTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		TeamID:      t.TeamID,
		ColumnID:    t.ColumnID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,

		CreatedBy:  t.CreatedBy,
		AssignedTo: t.AssignedTo,
		AssignedBy: t.AssignedBy,
		AssignedAt: t.AssignedAt,

		ReviewStatus: string(t.ReviewStatus),
		ReviewedBy:   t.ReviewedBy,
		ReviewedAt:   t.ReviewedAt,
		ReviewNote:   t.ReviewNote,

		CompletedBy: t.CompletedBy,
		CompletedAt: t.CompletedAt,

		IsArchived: t.IsArchived,
		ArchivedAt: t.ArchivedAt,

		CurrentColumnEntryAt: t.CurrentColumnEntryAt,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func ToTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskResponse(t))
	}
	return out
}

func ToHistoryEventResponse(e *models.HistoryEvent) HistoryEventResponse {
	return HistoryEventResponse{
		ID:               e.ID,
		TaskID:           e.TaskID,
		ChangeType:       string(e.ChangeType),
		OldValue:         e.OldValue,
		NewValue:         e.NewValue,
		FromColumnID:     e.FromColumnID,
		ToColumnID:       e.ToColumnID,
		TimeSpentSeconds: e.TimeSpentSeconds,
		ActorID:          e.ActorID,
		Details:          e.Details,
		CreatedAt:        e.CreatedAt,
	}
}

func ToHistoryEventResponses(events []*models.HistoryEvent) []HistoryEventResponse {
	out := make([]HistoryEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, ToHistoryEventResponse(e))
	}
	return out
}

func ToMoveRequestResponse(m *models.MoveRequest) MoveRequestResponse {
	return MoveRequestResponse{
		ID:             m.ID,
		TaskID:         m.TaskID,
		TeamID:         m.TeamID,
		FromColumnID:   m.FromColumnID,
		ToColumnID:     m.ToColumnID,
		FromColumnName: m.FromColumnName,
		ToColumnName:   m.ToColumnName,
		RequestedBy:    m.RequestedBy,
		Status:         string(m.Status),
		AdminReply:     m.AdminReply,
		HandledBy:      m.HandledBy,
		HandledAt:      m.HandledAt,
		CreatedAt:      m.CreatedAt,
	}
}

func ToMoveRequestResponses(requests []*models.MoveRequest) []MoveRequestResponse {
	out := make([]MoveRequestResponse, 0, len(requests))
	for _, m := range requests {
		out = append(out, ToMoveRequestResponse(m))
	}
	return out
}

func ToCustomFieldResponse(f *models.CustomField) CustomFieldResponse {
	opts := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		opts = append(opts, o.Value)
	}
	return CustomFieldResponse{
		ID:       f.ID,
		TeamID:   f.TeamID,
		Name:     f.Name,
		Type:     string(f.Type),
		Required: f.Required,
		IsActive: f.IsActive,
		Options:  opts,
	}
}

func ToDailyReportResponse(r *models.DailyReport) DailyReportResponse {
	return DailyReportResponse{
		TeamID:        r.TeamID,
		ReportDate:    r.ReportDate,
		TodoCount:     r.TodoCount,
		DoingCount:    r.DoingCount,
		ReviewCount:   r.ReviewCount,
		CompleteCount: r.CompleteCount,
		ArchivedCount: r.ArchivedCount,
		OverdueCount:  r.OverdueCount,
	}
}

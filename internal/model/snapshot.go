package model

// Snapshot returns the attribute map recorded in revision rows.
// Keys follow the column names; bookkeeping timestamps are left out.

func (m *Manual) Kind() EntityKind      { return EntityKindManual }
func (m *Manual) RevisableID() uint     { return m.ID }
func (m *Manual) CurrentVersion() string { return m.Version }

func (m *Manual) Snapshot() map[string]any {
	return map[string]any{
		"title":          m.Title,
		"iso_standard":   m.ISOStandard,
		"description":    m.Description,
		"version":        m.Version,
		"status":         m.Status,
		"created_by":     m.CreatedBy,
		"approved_by":    m.ApprovedBy,
		"approved_at":    m.ApprovedAt,
		"effective_date": m.EffectiveDate,
		"review_date":    m.ReviewDate,
		"metadata":       map[string]any(m.Metadata),
	}
}

func (s *Section) Kind() EntityKind      { return EntityKindSection }
func (s *Section) RevisableID() uint     { return s.ID }
func (s *Section) CurrentVersion() string { return "" }

func (s *Section) Snapshot() map[string]any {
	return map[string]any{
		"manual_id":         s.ManualID,
		"parent_section_id": s.ParentSectionID,
		"section_number":    s.SectionNumber,
		"title":             s.Title,
		"content":           s.Content,
		"order_index":       s.OrderIndex,
		"section_type":      s.SectionType,
		"is_required":       s.IsRequired,
		"requirements":      map[string]any(s.Requirements),
	}
}

func (p *Procedure) Kind() EntityKind      { return EntityKindProcedure }
func (p *Procedure) RevisableID() uint     { return p.ID }
func (p *Procedure) CurrentVersion() string { return p.Version }

func (p *Procedure) Snapshot() map[string]any {
	return map[string]any{
		"section_id":       p.SectionID,
		"procedure_code":   p.ProcedureCode,
		"title":            p.Title,
		"purpose":          p.Purpose,
		"scope":            p.Scope,
		"procedure_steps":  p.ProcedureSteps,
		"responsibilities": p.Responsibilities,
		"references":       p.References,
		"records":          p.Records,
		"status":           p.Status,
		"version":          p.Version,
		"owner_id":         p.OwnerID,
	}
}

func (d *Document) Kind() EntityKind      { return EntityKindDocument }
func (d *Document) RevisableID() uint     { return d.ID }
func (d *Document) CurrentVersion() string { return d.Version }

func (d *Document) Snapshot() map[string]any {
	return map[string]any{
		"manual_id":     d.ManualID,
		"section_id":    d.SectionID,
		"procedure_id":  d.ProcedureID,
		"document_code": d.DocumentCode,
		"title":         d.Title,
		"description":   d.Description,
		"document_type": d.DocumentType,
		"file_path":     d.FilePath,
		"file_name":     d.FileName,
		"file_type":     d.FileType,
		"file_size":     d.FileSize,
		"version":       d.Version,
		"status":        d.Status,
		"created_by":    d.CreatedBy,
		"approved_by":   d.ApprovedBy,
		"tags":          []string(d.Tags),
	}
}

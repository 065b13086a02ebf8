package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Manual struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	Title         string            `json:"title" gorm:"size:255;not null"`
	ISOStandard   string            `json:"iso_standard" gorm:"size:100"` // e.g. "ISO 9001:2015"
	Description   string            `json:"description" gorm:"type:text"`
	Version       string            `json:"version" gorm:"size:50;default:1.0"`
	Status        string            `json:"status" gorm:"size:50;default:draft"` // draft, review, approved, archived
	CreatedBy     uint              `json:"created_by" gorm:"not null"`
	ApprovedBy    *uint             `json:"approved_by"`
	ApprovedAt    *time.Time        `json:"approved_at"`
	EffectiveDate *time.Time        `json:"effective_date"`
	ReviewDate    *time.Time        `json:"review_date"`
	Metadata      datatypes.JSONMap `json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Creator   *User      `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Approver  *User      `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy"`
	Sections  []Section  `json:"sections,omitempty" gorm:"foreignKey:ManualID;constraint:OnDelete:CASCADE"`
	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:ManualID;constraint:OnDelete:CASCADE"`
	Revisions []Revision `json:"revisions,omitempty" gorm:"-"`
}

type Section struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	ManualID        uint              `json:"manual_id" gorm:"not null;uniqueIndex:idx_manual_section_number;index:idx_manual_parent"`
	ParentSectionID *uint             `json:"parent_section_id" gorm:"index:idx_manual_parent"`
	SectionNumber   string            `json:"section_number" gorm:"size:20;not null;uniqueIndex:idx_manual_section_number"` // local label, e.g. "4.1"
	Title           string            `json:"title" gorm:"size:255;not null"`
	Content         string            `json:"content" gorm:"type:text"`
	OrderIndex      int               `json:"order_index" gorm:"default:0"`
	SectionType     string            `json:"section_type" gorm:"size:50;default:section"` // chapter, section, subsection, appendix
	IsRequired      bool              `json:"is_required" gorm:"default:true"`
	Requirements    datatypes.JSONMap `json:"requirements"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	// FullSectionNumber 由祖先链推导，不入库
	FullSectionNumber string `json:"full_section_number,omitempty" gorm:"-"`

	Manual     *Manual     `json:"manual,omitempty" gorm:"foreignKey:ManualID"`
	Parent     *Section    `json:"parent_section,omitempty" gorm:"foreignKey:ParentSectionID"`
	Children   []Section   `json:"child_sections,omitempty" gorm:"foreignKey:ParentSectionID;constraint:OnDelete:CASCADE"`
	Procedures []Procedure `json:"procedures,omitempty" gorm:"foreignKey:SectionID"`
	Documents  []Document  `json:"documents,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:SET NULL"`
	Revisions  []Revision  `json:"revisions,omitempty" gorm:"-"`
}

type Procedure struct {
	ID               uint                        `json:"id" gorm:"primaryKey"`
	SectionID        uint                        `json:"section_id" gorm:"not null;index"`
	ProcedureCode    string                      `json:"procedure_code" gorm:"size:50;uniqueIndex;not null"` // e.g. "PRC-001"
	Title            string                      `json:"title" gorm:"size:255;not null"`
	Purpose          string                      `json:"purpose" gorm:"type:text"`
	Scope            string                      `json:"scope" gorm:"type:text"`
	ProcedureSteps   string                      `json:"procedure_steps" gorm:"type:text"`
	Responsibilities string                      `json:"responsibilities" gorm:"type:text"`
	References       string                      `json:"references" gorm:"type:text"`
	Records          string                      `json:"records" gorm:"type:text"`
	Status           string                      `json:"status" gorm:"size:50;default:draft"` // draft, review, approved, obsolete
	Version          string                      `json:"version" gorm:"size:50;default:1.0"`
	OwnerID          uint                        `json:"owner_id" gorm:"not null"`
	ReviewDate       *time.Time                  `json:"review_date"`
	EffectiveDate    *time.Time                  `json:"effective_date"`
	Attachments      datatypes.JSONSlice[string] `json:"attachments"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`

	Section   *Section   `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	Owner     *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:ProcedureID;constraint:OnDelete:SET NULL"`
	Revisions []Revision `json:"revisions,omitempty" gorm:"-"`
}

type Document struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	ManualID     uint                        `json:"manual_id" gorm:"not null;index"`
	SectionID    *uint                       `json:"section_id" gorm:"index"`
	ProcedureID  *uint                       `json:"procedure_id" gorm:"index"`
	DocumentCode string                      `json:"document_code" gorm:"size:50;uniqueIndex;not null"` // e.g. "DOC-001"
	Title        string                      `json:"title" gorm:"size:255;not null"`
	Description  string                      `json:"description" gorm:"type:text"`
	DocumentType string                      `json:"document_type" gorm:"size:50;default:other"` // form, template, checklist, record, policy, instruction, other
	FilePath     string                      `json:"file_path" gorm:"size:500"`
	FileName     string                      `json:"file_name" gorm:"size:255"`
	FileType     string                      `json:"file_type" gorm:"size:10"` // pdf, docx, ...
	FileSize     int64                       `json:"file_size"`                // bytes
	Version      string                      `json:"version" gorm:"size:20;default:1.0"`
	Status       string                      `json:"status" gorm:"size:50;default:draft"` // draft, review, approved, obsolete
	CreatedBy    uint                        `json:"created_by" gorm:"not null"`
	ApprovedBy   *uint                       `json:"approved_by"`
	ApprovedAt   *time.Time                  `json:"approved_at"`
	ReviewDate   *time.Time                  `json:"review_date"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`

	Manual    *Manual    `json:"manual,omitempty" gorm:"foreignKey:ManualID"`
	Section   *Section   `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	Procedure *Procedure `json:"procedure,omitempty" gorm:"foreignKey:ProcedureID"`
	Creator   *User      `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Approver  *User      `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy"`
	Revisions []Revision `json:"revisions,omitempty" gorm:"-"`
}

// FileSizeHuman formats the stored file size for display.
func (d *Document) FileSizeHuman() string {
	if d.FileSize <= 0 {
		return "Unknown"
	}
	size := float64(d.FileSize)
	units := []string{"B", "KB", "MB", "GB"}
	i := 0
	for size > 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}

func (m *Manual) IsApproved() bool    { return m.Status == "approved" }
func (p *Procedure) IsApproved() bool { return p.Status == "approved" }
func (d *Document) IsApproved() bool  { return d.Status == "approved" }

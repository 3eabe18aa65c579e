package controllers

import (
	"encoding/json"
	"fmt"
	"html"

	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/pricing"
	"github.com/Govind-619/PriceSphere/utils"
)

// EmailSheetRequest sends an exported sheet to a buyer
type EmailSheetRequest struct {
	To      string `json:"to" binding:"required,email"`
	Format  string `json:"format"`
	Message string `json:"message"`
}

func (pc *PricingController) ListSheets(c *gin.Context) {
	sheets := pc.engine.ListPricingSheets()
	pagination, err := utils.NewPagination(c)
	if err != nil {
		utils.LogDebug("Invalid pagination: %v", err)
		utils.BadRequest(c, utils.ErrInvalidPagination, err.Error())
		return
	}
	page := utils.PaginateSlice(sheets, pagination)
	utils.SendPaginatedResponse(c, "Pricing sheets retrieved successfully", page, pagination)
}

// CreateSheet stores a sheet exactly as submitted
func (pc *PricingController) CreateSheet(c *gin.Context) {
	var sheet models.PricingSheet
	if err := c.ShouldBindJSON(&sheet); err != nil {
		utils.LogDebug("Invalid pricing sheet payload: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := utils.ValidateStringLength(sheet.Name, 1, 200); err != nil {
		utils.ValidationError(c, "Invalid pricing sheet", "name "+err.Error())
		return
	}

	created := pc.engine.CreatePricingSheet(sheet)
	utils.LogInfo("Created pricing sheet %s (%s)", created.ID, created.Name)
	utils.Created(c, utils.MsgCreateSuccess, gin.H{"sheet": created})
}

// GenerateSheet builds a sheet from the current rules
func (pc *PricingController) GenerateSheet(c *gin.Context) {
	var req pricing.SheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("Invalid generate sheet payload: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	sheet, err := pc.engine.GeneratePricingSheet(req)
	if err != nil {
		utils.RespondError(c, "Failed to generate pricing sheet", err)
		return
	}
	utils.Created(c, utils.MsgCreateSuccess, gin.H{"sheet": sheet})
}

func (pc *PricingController) GetSheet(c *gin.Context) {
	sheet, err := pc.engine.GetPricingSheet(c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to get pricing sheet", err)
		return
	}
	utils.Success(c, "Pricing sheet retrieved successfully", gin.H{"sheet": sheet})
}

// UpdateSheet merges the JSON body into the stored sheet
func (pc *PricingController) UpdateSheet(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		utils.BadRequest(c, "Invalid request", "empty body")
		return
	}
	var probe models.PricingSheet
	if err := json.Unmarshal(body, &probe); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	sheet, err := pc.engine.UpdatePricingSheet(c.Param("id"), func(s *models.PricingSheet) {
		// body already decoded once above, so this cannot fail
		_ = json.Unmarshal(body, s)
	})
	if err != nil {
		utils.RespondError(c, "Failed to update pricing sheet", err)
		return
	}
	utils.LogInfo("Updated pricing sheet %s", sheet.ID)
	utils.Success(c, utils.MsgUpdateSuccess, gin.H{"sheet": sheet})
}

func (pc *PricingController) DeleteSheet(c *gin.Context) {
	id := c.Param("id")
	if err := pc.engine.DeletePricingSheet(id); err != nil {
		utils.RespondError(c, "Failed to delete pricing sheet", err)
		return
	}
	utils.LogInfo("Deleted pricing sheet %s", id)
	utils.Success(c, utils.MsgDeleteSuccess, nil)
}

// ExportSheet downloads a sheet as csv, xlsx or pdf. Defaults to csv.
func (pc *PricingController) ExportSheet(c *gin.Context) {
	format, err := pricing.ParseExportFormat(c.DefaultQuery("format", string(pricing.FormatCSV)))
	if err != nil {
		utils.RespondError(c, "Failed to export pricing sheet", err)
		return
	}

	file, err := pc.engine.ExportPricingSheet(c.Param("id"), format)
	if err != nil {
		utils.RespondError(c, "Failed to export pricing sheet", err)
		return
	}
	utils.LogInfo("Exported pricing sheet %s as %s (%d bytes)", c.Param("id"), format, len(file.Data))
	utils.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// EmailSheet mails an exported sheet as an attachment
func (pc *PricingController) EmailSheet(c *gin.Context) {
	var req EmailSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("Invalid email sheet payload: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Format == "" {
		req.Format = string(pricing.FormatPDF)
	}
	format, err := pricing.ParseExportFormat(req.Format)
	if err != nil {
		utils.RespondError(c, "Failed to send pricing sheet", err)
		return
	}

	sheet, err := pc.engine.GetPricingSheet(c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to send pricing sheet", err)
		return
	}
	file, err := pricing.EncodePricingSheet(&sheet, format)
	if err != nil {
		utils.RespondError(c, "Failed to send pricing sheet", err)
		return
	}

	subject := fmt.Sprintf("Pricing sheet: %s", sheet.Name)
	err = pc.mailer.Send(req.To, subject, sheetEmailBody(&sheet, req.Message), utils.EmailAttachment{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err != nil {
		utils.RespondError(c, "Failed to send pricing sheet", err)
		return
	}
	utils.LogInfo("Pricing sheet %s mailed to %s as %s", sheet.ID, req.To, format)
	utils.Success(c, utils.MsgSheetEmailSent, gin.H{"to": req.To, "filename": file.Filename})
}

func sheetEmailBody(sheet *models.PricingSheet, message string) string {
	body := fmt.Sprintf("<p>Please find attached the pricing sheet <strong>%s</strong>, valid from %s",
		html.EscapeString(sheet.Name), sheet.ValidFrom.Format("2006-01-02"))
	if sheet.ValidUntil != nil {
		body += " until " + sheet.ValidUntil.Format("2006-01-02")
	}
	body += ".</p>"
	if sheet.CustomerGroup != nil {
		body += "<p>Prices apply to the " + sheet.CustomerGroup.Label() + " customer group.</p>"
	}
	if message != "" {
		body += "<p>" + utils.SanitizeString(message) + "</p>"
	}
	return body
}

package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/Govind-619/PriceSphere/models"
	"github.com/Govind-619/PriceSphere/pricing"
	"github.com/Govind-619/PriceSphere/utils"
)

func ruleKindParam(c *gin.Context) (models.RuleKind, bool) {
	kind, ok := models.ParseRuleKind(c.Param("kind"))
	if !ok {
		utils.LogDebug("Unknown rule kind: %s", c.Param("kind"))
		utils.BadRequest(c, utils.ErrInvalidRuleKind, c.Param("kind"))
		return "", false
	}
	return kind, true
}

// ListRules returns one page of the rules of a kind
func (pc *PricingController) ListRules(c *gin.Context) {
	kind, ok := ruleKindParam(c)
	if !ok {
		return
	}
	rules, err := pc.engine.ListRules(kind)
	if err != nil {
		utils.RespondError(c, "Failed to list rules", err)
		return
	}

	pagination, err := utils.NewPagination(c)
	if err != nil {
		utils.LogDebug("Invalid pagination: %v", err)
		utils.BadRequest(c, utils.ErrInvalidPagination, err.Error())
		return
	}
	page := utils.PaginateSlice(rules, pagination)
	utils.LogDebug("Listing %d of %d %s rules", len(page), len(rules), kind)
	utils.SendPaginatedResponse(c, "Rules retrieved successfully", page, pagination)
}

// CreateRule decodes a rule of the kind in the path and adds it
func (pc *PricingController) CreateRule(c *gin.Context) {
	kind, ok := ruleKindParam(c)
	if !ok {
		return
	}
	rule, err := pricing.NewRule(kind)
	if err != nil {
		utils.RespondError(c, "Failed to create rule", err)
		return
	}
	if err := c.ShouldBindJSON(rule); err != nil {
		utils.LogDebug("Invalid %s rule payload: %v", kind, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := pricing.ValidateRule(rule); err != nil {
		utils.RespondError(c, "Invalid rule", err)
		return
	}

	added, err := pc.engine.AddRule(rule)
	if err != nil {
		utils.RespondError(c, "Failed to create rule", err)
		return
	}
	utils.LogInfo("Created %s rule %s (%s)", kind, added.Base().ID, added.Base().Name)
	utils.Created(c, utils.MsgCreateSuccess, gin.H{"rule": added})
}

func (pc *PricingController) GetRule(c *gin.Context) {
	kind, ok := ruleKindParam(c)
	if !ok {
		return
	}
	rule, err := pc.engine.GetRule(kind, c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to get rule", err)
		return
	}
	utils.Success(c, "Rule retrieved successfully", gin.H{"rule": rule})
}

// UpdateRule merges the JSON body into the stored rule. Fields missing from
// the body keep their values; the merged rule must still validate.
func (pc *PricingController) UpdateRule(c *gin.Context) {
	kind, ok := ruleKindParam(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		utils.BadRequest(c, "Invalid request", "empty body")
		return
	}

	updated, err := pc.engine.UpdateRule(kind, c.Param("id"), func(rule models.Rule) error {
		if err := json.Unmarshal(body, rule); err != nil {
			return utils.BadRequestError("Invalid request", err)
		}
		return pricing.ValidateRule(rule)
	})
	if err != nil {
		utils.RespondError(c, "Failed to update rule", err)
		return
	}
	utils.LogInfo("Updated %s rule %s", kind, updated.Base().ID)
	utils.Success(c, utils.MsgUpdateSuccess, gin.H{"rule": updated})
}

func (pc *PricingController) DeleteRule(c *gin.Context) {
	kind, ok := ruleKindParam(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := pc.engine.DeleteRule(kind, id); err != nil {
		utils.RespondError(c, "Failed to delete rule", err)
		return
	}
	utils.LogInfo("Deleted %s rule %s", kind, id)
	utils.Success(c, utils.MsgDeleteSuccess, nil)
}

func (pc *PricingController) ToggleRule(c *gin.Context) {
	kind, ok := ruleKindParam(c)
	if !ok {
		return
	}
	rule, err := pc.engine.ToggleRule(kind, c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to toggle rule", err)
		return
	}
	utils.LogInfo("Toggled %s rule %s active=%t", kind, rule.Base().ID, rule.Base().Active)
	utils.Success(c, utils.MsgToggleSuccess, gin.H{"rule": rule})
}

func (pc *PricingController) DuplicateRule(c *gin.Context) {
	kind, ok := ruleKindParam(c)
	if !ok {
		return
	}
	rule, err := pc.engine.DuplicateRule(kind, c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to duplicate rule", err)
		return
	}
	utils.LogInfo("Duplicated %s rule %s as %s", kind, c.Param("id"), rule.Base().ID)
	utils.Created(c, utils.MsgCreateSuccess, gin.H{"rule": rule})
}

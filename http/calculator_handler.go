package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"calc-hub/service"
)

// calculator adapts a calculator function into a POST handler that binds the
// JSON body, runs it through the runner and wraps the result.
func calculator[I, R any](h *Handler, job service.Job, fn func(I) (R, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input I
		if err := c.ShouldBindJSON(&input); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "request body too large"})
				return
			}
			badRequest(c, "invalid request body")
			return
		}

		result, cached, err := service.Run(c.Request.Context(), h.svc.Runner, job, userID(c), input, fn)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}

		if cached {
			c.Header("X-Cache", "HIT")
		} else {
			c.Header("X-Cache", "MISS")
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "calculator": job.Name, "result": result})
	}
}

func (h *Handler) registerCalculators(rg *gin.RouterGroup) {
	s := h.svc

	rg.GET("", h.catalog)

	// financial
	rg.POST("/loan", calculator(h, service.Job{Name: "loan"}, s.Loans.CalculateLoan))
	rg.POST("/auto-loan", calculator(h, service.Job{Name: "auto-loan"}, s.Loans.CalculateAutoLoan))
	rg.POST("/payment", calculator(h, service.Job{Name: "payment"}, s.Loans.CalculatePayment))
	rg.POST("/simple-loan", calculator(h, service.Job{Name: "simple-loan"}, s.Loans.CalculateSimpleLoan))
	rg.POST("/interest-rate", calculator(h, service.Job{Name: "interest-rate"}, s.Loans.SolveInterestRate))
	rg.POST("/interest", calculator(h, service.Job{Name: "interest"}, s.Savings.CalculateInterest))
	rg.POST("/investment", calculator(h, service.Job{Name: "investment"}, s.Savings.CalculateInvestment))
	rg.POST("/finance", calculator(h, service.Job{Name: "finance"}, s.Savings.SolveFinance))
	rg.POST("/retirement", calculator(h, service.Job{Name: "retirement"}, s.Savings.PlanRetirement))
	rg.POST("/inflation", calculator(h, service.Job{Name: "inflation"}, s.Savings.AdjustForInflation))
	rg.POST("/income-tax", calculator(h, service.Job{Name: "income-tax"}, s.Tax.CalculateIncomeTax))
	rg.POST("/term-recommendation", calculator(h, service.Job{Name: "term-recommendation"}, s.Terms.RecommendTerm))
	rg.POST("/debt-payoff", calculator(h, service.Job{Name: "debt-payoff"}, s.Debts.CalculatePayoffPlan))

	// health; due-date depends on today unless as_of is given
	rg.POST("/bmi", calculator(h, service.Job{Name: "bmi"}, s.Health.CalculateBMI))
	rg.POST("/body-fat", calculator(h, service.Job{Name: "body-fat"}, s.Health.CalculateBodyFat))
	rg.POST("/calorie", calculator(h, service.Job{Name: "calorie"}, s.Health.CalculateCalories))
	rg.POST("/due-date", calculator(h, service.Job{Name: "due-date", NoCache: true}, s.Health.CalculateDueDate))

	// other
	rg.POST("/date-add", calculator(h, service.Job{Name: "date-add"}, s.DateTime.AddToDate))
	rg.POST("/date-diff", calculator(h, service.Job{Name: "date-diff"}, s.DateTime.DiffDates))
	rg.POST("/pace", calculator(h, service.Job{Name: "pace"}, s.DateTime.CalculatePace))

	// math
	rg.POST("/percentage", calculator(h, service.Job{Name: "percentage"}, s.Math.CalculatePercentage))
	rg.POST("/fraction", calculator(h, service.Job{Name: "fraction"}, s.Math.CalculateFraction))
	rg.POST("/triangle", calculator(h, service.Job{Name: "triangle"}, s.Math.SolveTriangle))
	rg.POST("/random", calculator(h, service.Job{Name: "random", NoCache: true}, s.Math.GenerateRandom))
	rg.POST("/expression", calculator(h, service.Job{Name: "expression"}, s.Math.EvaluateExpression))
}

func (h *Handler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "calculators": service.Catalog()})
}

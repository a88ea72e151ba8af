package controllers

import (
	"LabLedger/handlers"

	"github.com/gin-gonic/gin"
)

// SetupLabRoutes registers the back-office routes on the bearer-protected
// group.
func SetupLabRoutes(
	router *gin.RouterGroup,
	caseHandler *handlers.CaseHandler,
	doctorHandler *handlers.DoctorHandler,
	workTypeHandler *handlers.WorkTypeHandler,
	expenseHandler *handlers.ExpenseHandler,
	partnerHandler *handlers.PartnerHandler,
	doctorTransactionHandler *handlers.DoctorTransactionHandler,
	checkHandler *handlers.CheckHandler,
	financeHandler *handlers.FinanceHandler,
	exportHandler *handlers.ExportHandler,
) {
	router.POST("/doctors", doctorHandler.CreateDoctor)
	router.GET("/doctors", doctorHandler.GetAllDoctors)
	router.GET("/doctors/:doctor_id", doctorHandler.GetDoctorByID)
	router.PUT("/doctors/:doctor_id", doctorHandler.UpdateDoctor)
	router.DELETE("/doctors/:doctor_id", doctorHandler.DeleteDoctor)
	router.PUT("/doctors/:doctor_id/prices", doctorHandler.UpsertWorkTypePrice)
	router.GET("/doctors/:doctor_id/balance", doctorHandler.GetDoctorBalance)
	router.GET("/doctors/:doctor_id/cases", caseHandler.GetCasesByDoctor)
	router.GET("/doctors/:doctor_id/transactions", doctorTransactionHandler.GetTransactionsByDoctor)
	router.GET("/doctors/:doctor_id/checks", checkHandler.GetChecksByDoctor)
	router.GET("/doctors/:doctor_id/statement.xlsx", exportHandler.DoctorStatementExcel)
	router.GET("/doctors/:doctor_id/statement.pdf", exportHandler.DoctorStatementPDF)
	router.POST("/doctors/:doctor_id/whatsapp_link", exportHandler.WhatsAppLink)

	router.POST("/cases", caseHandler.CreateCase)
	router.GET("/cases", caseHandler.GetAllCases)
	router.GET("/cases/:case_id", caseHandler.GetCaseByID)
	router.PUT("/cases/:case_id", caseHandler.UpdateCase)
	router.DELETE("/cases/:case_id", caseHandler.DeleteCase)

	router.POST("/work_types", workTypeHandler.CreateWorkType)
	router.GET("/work_types", workTypeHandler.GetAllWorkTypes)
	router.PUT("/work_types/:work_type_id", workTypeHandler.UpdateWorkType)
	router.DELETE("/work_types/:work_type_id", workTypeHandler.DeleteWorkType)

	router.POST("/expenses", expenseHandler.CreateExpense)
	router.GET("/expenses", expenseHandler.GetAllExpenses)
	router.GET("/expenses/:expense_id", expenseHandler.GetExpenseByID)
	router.PUT("/expenses/:expense_id", expenseHandler.UpdateExpense)
	router.DELETE("/expenses/:expense_id", expenseHandler.DeleteExpense)
	router.POST("/expense_types", expenseHandler.CreateExpenseType)
	router.GET("/expense_types", expenseHandler.GetAllExpenseTypes)
	router.DELETE("/expense_types/:type_id", expenseHandler.DeleteExpenseType)

	router.POST("/partners", partnerHandler.CreatePartner)
	router.GET("/partners", partnerHandler.GetAllPartners)
	router.GET("/partners/:partner_id", partnerHandler.GetPartnerByID)
	router.GET("/partners/:partner_id/summary", partnerHandler.GetPartnerSummary)
	router.PUT("/partners/:partner_id", partnerHandler.UpdatePartner)
	router.DELETE("/partners/:partner_id", partnerHandler.DeletePartner)
	router.POST("/partners/:partner_id/withdrawals", partnerHandler.Withdraw)
	router.POST("/partners/:partner_id/deposits", partnerHandler.Deposit)
	router.GET("/partners/:partner_id/transactions", partnerHandler.GetPartnerTransactions)
	router.PUT("/partner_transactions/:transaction_id", partnerHandler.UpdatePartnerTransaction)
	router.DELETE("/partner_transactions/:transaction_id", partnerHandler.DeletePartnerTransaction)

	router.POST("/doctor_transactions", doctorTransactionHandler.CreateTransaction)
	router.GET("/doctor_transactions/:transaction_id", doctorTransactionHandler.GetTransactionByID)
	router.PUT("/doctor_transactions/:transaction_id", doctorTransactionHandler.UpdateTransaction)
	router.DELETE("/doctor_transactions/:transaction_id", doctorTransactionHandler.DeleteTransaction)

	router.POST("/checks", checkHandler.CreateCheck)
	router.GET("/checks", checkHandler.GetAllChecks)
	router.GET("/checks/:check_id", checkHandler.GetCheckByID)
	router.PUT("/checks/:check_id", checkHandler.UpdateCheck)
	router.DELETE("/checks/:check_id", checkHandler.DeleteCheck)

	router.GET("/finance/capital", financeHandler.GetCapital)
	router.POST("/finance/reconcile", financeHandler.Reconcile)

	router.GET("/backup", exportHandler.ExportBackup)
	router.POST("/backup/restore", exportHandler.ImportBackup)
}

// SetupPortalRoute registers the doctor portal outside the bearer-protected
// group; the access token in the URL is the only credential.
func SetupPortalRoute(router *gin.Engine, portalHandler *handlers.PortalHandler) {
	router.GET("/portal/:token", portalHandler.GetPortal)
}

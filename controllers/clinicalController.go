package controllers

import (
	"github.com/gin-gonic/gin"

	"CityGeneral/handlers"
	"CityGeneral/middlewares"
	"CityGeneral/models"
	"CityGeneral/utils"
)

// SetupClinicalRoutes registers the patient, doctor, appointment, medical
// record, prescription, and billing routes. Every route requires a valid
// token; writes carry role gates on top, with admin passing all of them.
func SetupClinicalRoutes(
	router *gin.Engine,
	maker *utils.TokenMaker,
	users middlewares.UserFinder,
	policy *utils.PasswordPolicy,
	patientHandler *handlers.PatientHandler,
	doctorHandler *handlers.DoctorHandler,
	appointmentHandler *handlers.AppointmentHandler,
	medicalRecordHandler *handlers.MedicalRecordHandler,
	prescriptionHandler *handlers.PrescriptionHandler,
	billingHandler *handlers.BillingHandler,
) {
	authed := router.Group("/", middlewares.RequireAuth(maker, users, policy))
	receptionist := middlewares.RequireRole(models.RoleReceptionist)
	doctor := middlewares.RequireRole(models.RoleDoctor)
	admin := middlewares.RequireAdmin()

	authed.GET("/patients", patientHandler.GetAllPatients)
	authed.GET("/patients/:id", patientHandler.GetPatientByID)
	authed.POST("/patients", receptionist, patientHandler.CreatePatient)
	authed.PUT("/patients/:id", receptionist, patientHandler.UpdatePatient)
	authed.DELETE("/patients/:id", admin, patientHandler.DeletePatient)

	authed.GET("/doctors", doctorHandler.GetAllDoctors)
	authed.GET("/doctors/:id", doctorHandler.GetDoctorByID)
	authed.POST("/doctors", admin, doctorHandler.CreateDoctor)
	authed.PUT("/doctors/:id", admin, doctorHandler.UpdateDoctor)
	authed.DELETE("/doctors/:id", admin, doctorHandler.DeleteDoctor)

	authed.GET("/appointments", appointmentHandler.GetAllAppointments)
	authed.GET("/appointments/:id", appointmentHandler.GetAppointmentByID)
	authed.POST("/appointments", receptionist, appointmentHandler.CreateAppointment)
	authed.PUT("/appointments/:id", receptionist, appointmentHandler.UpdateAppointment)
	authed.DELETE("/appointments/:id", receptionist, appointmentHandler.DeleteAppointment)

	authed.GET("/medical-records/:id", medicalRecordHandler.GetMedicalRecordByID)
	authed.GET("/patients/:id/medical-records", medicalRecordHandler.GetMedicalRecordsByPatient)
	authed.POST("/medical-records", doctor, medicalRecordHandler.CreateMedicalRecord)
	authed.PUT("/medical-records/:id", doctor, medicalRecordHandler.UpdateMedicalRecord)
	authed.DELETE("/medical-records/:id", doctor, medicalRecordHandler.DeleteMedicalRecord)

	authed.GET("/prescriptions/:id", prescriptionHandler.GetPrescriptionByID)
	authed.GET("/patients/:id/prescriptions", prescriptionHandler.GetPrescriptionsByPatient)
	authed.POST("/prescriptions", doctor, prescriptionHandler.CreatePrescription)
	authed.PUT("/prescriptions/:id", doctor, prescriptionHandler.UpdatePrescription)
	authed.DELETE("/prescriptions/:id", doctor, prescriptionHandler.DeletePrescription)

	authed.GET("/bills", billingHandler.GetAllBills)
	authed.GET("/bills/:id", billingHandler.GetBillByID)
	authed.POST("/bills", receptionist, billingHandler.CreateBill)
	authed.PUT("/bills/:id", receptionist, billingHandler.UpdateBill)
	authed.POST("/bills/:id/pay", receptionist, billingHandler.PayBill)
	authed.DELETE("/bills/:id", admin, billingHandler.DeleteBill)
}

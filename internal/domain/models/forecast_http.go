package models

// PredictForm is the inbound body of POST /predict. Both urlencoded and
// multipart forms bind through the form tags; JSON bodies use the json tags.
type PredictForm struct {
	Model string `form:"model" json:"model" validate:"required"`
	Data  string `form:"data" json:"data" validate:"required"`
}

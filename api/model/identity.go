/*
Copyright 2024 Sanad Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package model

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshToken struct {
	Refresh string `json:"refresh"`
}

type Register struct {
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	BirthDate   *string `json:"birth_date"`
	Passport    *string `json:"passport"`
	EmiratesID  *string `json:"emirates_id"`
	FaceScan    *string `json:"face_scan"`
}

type ChangeStatus struct {
	Status string `json:"status"`
}

type VerifyFaceID struct {
	FaceScan   string `json:"face_scan"`
	EmiratesID string `json:"emirates_id"`
}

type CreateEmployee struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type UpdateEmployee struct {
	Role string `json:"role"`
}

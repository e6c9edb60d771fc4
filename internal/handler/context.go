package handler

type ContextKey string

var (
	RoleCtxKey       ContextKey = "role"
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	UserInfoCtx      ContextKey = "userInfo"
	EstablishmentCtx ContextKey = "establishment"
	EmployeeCtx      ContextKey = "employee"
	ScheduleCtx      ContextKey = "schedule"
)

package services

// ServiceContainer holds instances of all application services. It is the
// entry point handlers use to reach service functionality.
type ServiceContainer struct {
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleAuth  GoogleAuthSvcFacade
	Account     AccountSvcFacade
	Category    CategorySvcFacade
	Transaction TransactionSvcFacade
	Allocation  AllocationSvcFacade
	Borrowing   BorrowingSvcFacade
}

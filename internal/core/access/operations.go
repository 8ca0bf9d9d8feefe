package access

// Operation names a gated workflow operation
type Operation string

const (
	ClientRead   Operation = "client.read"
	ClientWrite  Operation = "client.write"
	ClientDelete Operation = "client.delete"

	ContractRead   Operation = "contract.read"
	ContractCreate Operation = "contract.create"
	ContractUpdate Operation = "contract.update"
	ContractRenew  Operation = "contract.renew"
	ContractCancel Operation = "contract.cancel"
	ContractDelete Operation = "contract.delete"

	ClaimRead   Operation = "claim.read"
	ClaimCreate Operation = "claim.create"
	ClaimUpdate Operation = "claim.update"
	ClaimDelete Operation = "claim.delete"

	FolderRead    Operation = "folder.read"
	FolderWrite   Operation = "folder.write"
	FolderArchive Operation = "folder.archive"
	ArchiveRead   Operation = "archive.read"

	IndemnificationRead     Operation = "indemnification.read"
	IndemnificationPropose  Operation = "indemnification.propose"
	IndemnificationValidate Operation = "indemnification.validate"
	IndemnificationPay      Operation = "indemnification.pay"

	PremiumRead   Operation = "premium.read"
	PremiumCreate Operation = "premium.create"
	PremiumPay    Operation = "premium.pay"

	VehicleRead  Operation = "vehicle.read"
	VehicleWrite Operation = "vehicle.write"

	DocumentRead   Operation = "document.read"
	DocumentUpload Operation = "document.upload"
	DocumentDelete Operation = "document.delete"

	BankRead      Operation = "bank.read"
	BankImport    Operation = "bank.import"
	BankReconcile Operation = "bank.reconcile"

	HistoryRead   Operation = "history.read"
	DashboardRead Operation = "dashboard.read"

	ReferenceRead  Operation = "reference.read"
	ReferenceWrite Operation = "reference.write"

	UserManage Operation = "user.manage"
	RoleManage Operation = "role.manage"
)

// All is granted by the "*" entry of the capability table
var All = []Operation{
	ClientRead, ClientWrite, ClientDelete,
	ContractRead, ContractCreate, ContractUpdate, ContractRenew, ContractCancel, ContractDelete,
	ClaimRead, ClaimCreate, ClaimUpdate, ClaimDelete,
	FolderRead, FolderWrite, FolderArchive, ArchiveRead,
	IndemnificationRead, IndemnificationPropose, IndemnificationValidate, IndemnificationPay,
	PremiumRead, PremiumCreate, PremiumPay,
	VehicleRead, VehicleWrite,
	DocumentRead, DocumentUpload, DocumentDelete,
	BankRead, BankImport, BankReconcile,
	HistoryRead, DashboardRead,
	ReferenceRead, ReferenceWrite,
	UserManage, RoleManage,
}

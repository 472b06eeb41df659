package labels

var tables = map[string]map[string]string{
	"en": {
		"app_title":           "Income-Expense and Healthy Eating Tracker",
		"select_user":         "Select User",
		"create_user":         "Create New User",
		"new_user":            "Enter new username",
		"create":              "Create",
		"invalid_user":        "Please enter a valid username!",
		"choose_user_first":   "Select or create a user to start recording.",
		"goals_title":         "Personal Goals",
		"target_calories":     "Daily calorie goal (kcal)",
		"target_expense":      "Daily expense budget",
		"save_goals":          "Save goals",
		"goals_saved":         "Goals updated.",
		"tab_entry":           "New Entry",
		"tab_history":         "Entry History",
		"tab_dashboard":       "Consumption Dashboard",
		"date":                "Date",
		"kind":                "Type",
		"Income":              "Income",
		"Expense":             "Expense",
		"category":            "Expense Category",
		"description":         "Description",
		"amount":              "Amount",
		"menu":                "Food/Drink Menu",
		"calories":            "Calories",
		"save_entry":          "Save entry",
		"entry_saved":         "Entry saved successfully!",
		"save_failed":         "The entry could not be saved. Please try again.",
		"no_entries":          "No entries recorded yet.",
		"total_income":        "Total income",
		"total_expense":       "Total expenses",
		"net_balance":         "Net balance",
		"today_summary":       "Today's Summary",
		"calories_today":      "Calories Today",
		"expenses_today":      "Expenses Today",
		"income_today":        "Income Today",
		"calorie_exceeded":    "You exceeded your calorie goal today!",
		"calorie_within":      "You're within your target range. Great job!",
		"budget_exceeded":     "You spent more than your daily budget today.",
		"budget_within":       "Spending is within today's budget.",
		"monthly_summary":     "Monthly Summary",
		"monthly_calories":    "Monthly Calories",
		"monthly_expenses":    "Monthly Expenses",
		"monthly_income":      "Monthly Income",
		"daily_expenses":      "Daily Expenses",
		"daily_income":        "Daily Income",
		"by_category":         "Expenses by Category",
		"no_month_data":       "Nothing recorded this month.",
		"summary_unavailable": "The dashboard is unavailable because stored data is invalid.",
		"export":              "Export",
		"language":            "Language",
		"load_failed":         "The ledger could not be loaded. Please try again.",
		"invalid_date":        "Please enter a valid date (YYYY-MM-DD).",
		"invalid_amount":      "Please enter a valid non-negative amount.",
		"invalid_menu":        "Please choose a menu item from the list.",
		"invalid_entry":       "The entry is not valid",
		"invalid_goals":       "Goals are out of range.",
		"bad_request":         "The request could not be read.",
		"goals_hint":          "Calories 100 to 5000, budget 0 to 100000.",
		"user_label":          "User",
	},
	"th": {
		"app_title":           "บันทึกรายรับรายจ่ายและการกินเพื่อสุขภาพ",
		"select_user":         "เลือกผู้ใช้",
		"create_user":         "สร้างผู้ใช้ใหม่",
		"new_user":            "กรอกชื่อผู้ใช้ใหม่",
		"create":              "สร้าง",
		"invalid_user":        "กรุณากรอกชื่อผู้ใช้ที่ถูกต้อง!",
		"choose_user_first":   "เลือกหรือสร้างผู้ใช้เพื่อเริ่มบันทึก",
		"goals_title":         "เป้าหมายส่วนตัว",
		"target_calories":     "เป้าหมายแคลอรี่ต่อวัน (kcal)",
		"target_expense":      "งบรายจ่ายต่อวัน",
		"save_goals":          "บันทึกเป้าหมาย",
		"goals_saved":         "อัปเดตเป้าหมายแล้ว",
		"tab_entry":           "เพิ่มรายการ",
		"tab_history":         "ประวัติรายการ",
		"tab_dashboard":       "แดชบอร์ดการบริโภค",
		"date":                "วันที่",
		"kind":                "ประเภท",
		"Income":              "รายรับ",
		"Expense":             "รายจ่าย",
		"category":            "หมวดรายจ่าย",
		"description":         "รายละเอียด",
		"amount":              "จำนวนเงิน",
		"menu":                "เมนูอาหาร/เครื่องดื่ม",
		"calories":            "แคลอรี่",
		"save_entry":          "บันทึกรายการ",
		"entry_saved":         "บันทึกรายการเรียบร้อยแล้ว!",
		"save_failed":         "ไม่สามารถบันทึกรายการได้ กรุณาลองใหม่",
		"no_entries":          "ยังไม่มีรายการที่บันทึกไว้",
		"total_income":        "รายรับรวม",
		"total_expense":       "รายจ่ายรวม",
		"net_balance":         "ยอดคงเหลือสุทธิ",
		"today_summary":       "สรุปวันนี้",
		"calories_today":      "แคลอรี่วันนี้",
		"expenses_today":      "รายจ่ายวันนี้",
		"income_today":        "รายรับวันนี้",
		"calorie_exceeded":    "วันนี้คุณกินเกินเป้าหมายแคลอรี่แล้ว!",
		"calorie_within":      "คุณยังอยู่ในเป้าหมาย เยี่ยมมาก!",
		"budget_exceeded":     "วันนี้คุณใช้จ่ายเกินงบประมาณ",
		"budget_within":       "รายจ่ายวันนี้อยู่ในงบประมาณ",
		"monthly_summary":     "สรุปรายเดือน",
		"monthly_calories":    "แคลอรี่เดือนนี้",
		"monthly_expenses":    "รายจ่ายเดือนนี้",
		"monthly_income":      "รายรับเดือนนี้",
		"daily_expenses":      "รายจ่ายรายวัน",
		"daily_income":        "รายรับรายวัน",
		"by_category":         "รายจ่ายตามหมวด",
		"no_month_data":       "เดือนนี้ยังไม่มีรายการ",
		"summary_unavailable": "ไม่สามารถแสดงแดชบอร์ดได้ เนื่องจากข้อมูลที่บันทึกไม่ถูกต้อง",
		"export":              "ส่งออก",
		"language":            "ภาษา",
		"load_failed":         "ไม่สามารถโหลดข้อมูลได้ กรุณาลองใหม่",
		"invalid_date":        "กรุณากรอกวันที่ให้ถูกต้อง (YYYY-MM-DD)",
		"invalid_amount":      "กรุณากรอกจำนวนเงินที่ไม่ติดลบ",
		"invalid_menu":        "กรุณาเลือกเมนูจากรายการ",
		"invalid_entry":       "รายการไม่ถูกต้อง",
		"invalid_goals":       "เป้าหมายอยู่นอกช่วงที่กำหนด",
		"bad_request":         "ไม่สามารถอ่านคำขอได้",
		"goals_hint":          "แคลอรี่ 100 ถึง 5000 งบ 0 ถึง 100000",
		"user_label":          "ผู้ใช้",
	},
}

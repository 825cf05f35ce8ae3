package constant

import "primoboost-be/pkg/intent"

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "assistant"

	SupportEmail = "primoboostai@gmail.com"

	ChatWelcomeMessage = "Hi! I'm the PrimoBoost AI assistant. Ask me about resume optimization, ATS scores, job listings, interview prep, or pricing."

	// ChatFallbackMessage is the terminal answer when neither the remote
	// completion nor the local knowledge base produced anything.
	ChatFallbackMessage = "I can help you with resume optimization, ATS scores, job listings, interview prep, pricing, and more.\n\nCould you rephrase your question? Or feel free to email primoboostai@gmail.com for personalized support."

	ChatSystemPrompt = `You are PrimoBoost AI, the support assistant for PrimoBoostAI.in - an AI-powered resume optimization and career platform.

Rules:
- Keep responses under 5 lines, conversational and professional.
- Never use markdown formatting, bold, asterisks, or emojis.
- Answer questions about resume optimization, job listings, interview prep, pricing, and platform features.
- For payment/billing issues, direct users to email primoboostai@gmail.com.

Pricing (50% OFF, one-time purchase):
Leader Plan - Rs.16,400 - 100 Resume Credits
Achiever Plan - Rs.13,200 - 50 Resume Credits
Accelerator Plan - Rs.11,600 - 25 Resume Credits
Starter Plan - Rs.1,640 - 10 Resume Credits
Kickstart Plan - Rs.1,320 - 5 Resume Credits`
)

// ChatKnowledgeBase is the static keyword-to-response table backing the local
// matcher. Order matters: earlier entries win score ties.
var ChatKnowledgeBase = []intent.KnowledgeEntry{
	{
		Keywords: []string{"what is primoboost", "about primoboost", "tell me about", "what does primoboost do", "primoboost ai"},
		Response: "PrimoBoost AI is an AI-powered career platform that helps you optimize your resume for ATS systems, match with relevant jobs, and prepare for interviews.\n\nOur tools analyze your resume against job descriptions and provide actionable improvements to increase your interview callback rate.",
	},
	{
		Keywords: []string{"optimize", "resume optimization", "improve resume", "fix resume", "enhance resume", "rewrite resume"},
		Response: "To optimize your resume:\n\n1. Go to the Resume Optimizer from the AI Tools menu\n2. Upload your resume (PDF or text)\n3. Paste the job description you're targeting\n4. Our AI analyzes keyword alignment, ATS compatibility, and content quality\n5. Get specific suggestions to improve your match score\n\nThe optimizer checks 16 parameters including skills match, experience relevance, and formatting.",
	},
	{
		Keywords: []string{"ats score", "score checker", "check score", "ats check", "resume score", "how good is my resume"},
		Response: "The ATS Score Checker evaluates your resume across 16 key parameters:\n\n- Keyword matching with the job description\n- Skills alignment and gap analysis\n- Experience relevance scoring\n- Formatting and structure compliance\n- Content quality assessment\n\nUpload your resume and paste a job description to get your detailed score breakdown.",
	},
	{
		Keywords: []string{"job", "jobs", "job listing", "latest jobs", "find jobs", "job search", "openings"},
		Response: "We post fresh job listings daily across multiple industries and experience levels.\n\nVisit the Latest Jobs page to browse current openings. You can filter by role, location, and experience level. Each listing shows the full job description so you can optimize your resume specifically for that role.",
	},
	{
		Keywords: []string{"price", "pricing", "plan", "subscription", "cost", "buy", "payment", "pay", "credit"},
		Response: "Our plans (50% OFF - one-time purchase):\n\nLeader Plan - Rs.16,400 - 100 Resume Credits\nAchiever Plan - Rs.13,200 - 50 Resume Credits\nAccelerator Plan - Rs.11,600 - 25 Resume Credits\nStarter Plan - Rs.1,640 - 10 Resume Credits\nKickstart Plan - Rs.1,320 - 5 Resume Credits\n\nEach plan includes Resume Optimizations, ATS Score Checks, and Premium Support.\n\nFor billing inquiries, email primoboostai@gmail.com.",
	},
	{
		Keywords: []string{"contact", "support", "help", "email", "reach", "talk to", "customer service"},
		Response: "You can reach our support team at:\n\nEmail: primoboostai@gmail.com\n\nOur team typically responds within 2 minutes during business hours. For payment or billing issues, please include a screenshot of the issue in your email.",
	},
	{
		Keywords: []string{"interview", "mock interview", "interview prep", "practice interview"},
		Response: "PrimoBoost offers multiple interview preparation tools:\n\n- Mock Interviews with AI-generated questions based on your target role\n- Resume-Based Interviews that test you on your own experience\n- Smart Coding Interviews for technical roles\n- Real-time feedback and performance scoring\n\nFind these under the AI Tools menu.",
	},
	{
		Keywords: []string{"portfolio", "portfolio builder", "create portfolio", "build portfolio"},
		Response: "The Portfolio Builder helps you create a professional online portfolio showcasing your projects and skills.\n\nYou can add project descriptions, link to repositories, and organize your work in a clean, presentable format that you can share with potential employers.",
	},
	{
		Keywords: []string{"linkedin", "linkedin message", "linkedin generator", "cold message", "outreach"},
		Response: "The LinkedIn Message Generator creates personalized connection requests and outreach messages.\n\nIt uses the job description and your profile to craft compelling messages for recruiters and hiring managers, helping you stand out in their inbox.",
	},
	{
		Keywords: []string{"webinar", "webinars", "live session", "workshop"},
		Response: "We host regular webinars and live sessions on resume building, interview preparation, and career growth strategies.\n\nCheck the Webinars page for upcoming sessions. You can register and get reminders before each event.",
	},
	{
		Keywords: []string{"guided builder", "build resume", "create resume", "resume builder", "new resume"},
		Response: "The Guided Resume Builder walks you through creating a professional resume step by step.\n\nIt covers all essential sections: contact info, summary, experience, education, skills, projects, and certifications. Perfect for freshers or anyone starting from scratch.",
	},
	{
		Keywords: []string{"gaming", "aptitude", "spatial reasoning", "cognitive", "game", "assessment"},
		Response: "Our Gaming & Aptitude section helps you prepare for cognitive assessments used by top companies.\n\nAvailable games include Spatial Reasoning, Path Finder, Key Finder, and Bubble Selection - all modeled after real assessment tests used in hiring.",
	},
	{
		Keywords: []string{"fresher", "no experience", "first job", "graduate", "entry level", "beginner"},
		Response: "PrimoBoost is great for freshers! Here's how to get started:\n\n1. Use the Guided Resume Builder to create your first resume\n2. Highlight projects, internships, and coursework\n3. Use the ATS Score Checker to ensure your resume passes filters\n4. Browse Latest Jobs for entry-level openings\n5. Practice with Mock Interviews\n\nEven without work experience, a well-optimized resume makes a strong impression.",
	},
	{
		Keywords: []string{"pdf", "export", "download", "save resume"},
		Response: "You can export your optimized resume as a PDF directly from the preview panel.\n\nAfter optimization, click the Export/Download button to save your ATS-friendly resume ready for submission.",
	},
	{
		Keywords: []string{"blog", "articles", "career tips", "resources"},
		Response: "Visit our Blog for the latest career tips, resume writing guides, interview strategies, and industry insights.\n\nWe regularly publish content to help you stay ahead in your job search.",
	},
	{
		Keywords: []string{"refund", "money back", "cancel", "cancellation"},
		Response: "For refund requests or cancellation inquiries, please email primoboostai@gmail.com with your account details and a screenshot of your purchase.\n\nOur team will review and respond within 2 minutes during business hours.",
	},
	{
		Keywords: []string{"how to use", "tutorial", "guide", "getting started", "start", "how it works"},
		Response: "Getting started with PrimoBoost AI is easy:\n\n1. Sign up for a free account\n2. Upload your resume (PDF or paste text)\n3. Paste the job description you're targeting\n4. Get your ATS score and optimization suggestions\n5. Apply the improvements and export your optimized resume\n\nCheck the Tutorials page for detailed walkthroughs of each feature.",
	},
}
